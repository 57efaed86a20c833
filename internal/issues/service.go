package issues

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/opencivic/civic-reporter/internal"
	issueDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/issue"
	"github.com/opencivic/civic-reporter/internal/core/events"
)

// RepositoryAPI defines the data access methods for issues.
type RepositoryAPI interface {
	Create(issue *issueDatamodel.Issue) error
	GetByID(id string) (*issueDatamodel.Issue, error)
	GetAll() ([]*issueDatamodel.Issue, error)
	GetByUserID(userID string) ([]*issueDatamodel.Issue, error)
	Update(id string, fields map[string]interface{}) error
	Delete(id string) (int64, error)
	GetOwner(userID string) (name string, email string, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CreateIssue validates intake input and persists a new issue with status
// Submitted. A user_id that points at no users row surfaces as a database
// error from the repository, not a validation failure.
func (s *Service) CreateIssue(ctx context.Context, dto CreateIssueDTO) (*Issue, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("issue validation failed", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	issue := NewIssue(dto)

	if err := s.repo.Create(ToDataModel(issue)); err != nil {
		s.logger.Error("failed to create issue", "error", err, "user_id", dto.UserID)
		return nil, errors.NewDatabaseError("Failed to create issue", err)
	}

	if s.bus != nil {
		event := events.NewIssueSubmittedEvent(issue.ID, issue.UserID, issue.Category, issue.Location)
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish issue submitted event", "error", err, "issue_id", issue.ID)
		}
	}

	s.logger.Info("issue created",
		"issue_id", issue.ID,
		"user_id", issue.UserID,
		"category", issue.Category)

	return issue, nil
}

// GetIssueByID fetches one issue and attaches the owner's name and email
// when the owning users row still exists.
func (s *Service) GetIssueByID(ctx context.Context, id string) (*Issue, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get issue", "error", err, "issue_id", id)
		return nil, errors.NewDatabaseError("Failed to get issue", err)
	}

	issue := FromDataModel(dm)

	name, email, err := s.repo.GetOwner(issue.UserID)
	if err != nil {
		// the issue is still valid without the join; orphaned rows happen
		s.logger.Warn("issue owner lookup failed", "issue_id", id, "user_id", issue.UserID, "error", err)
	} else if name != "" || email != "" {
		issue.Users = &Owner{Name: name, Email: email}
	}

	return issue, nil
}

// ListIssues returns all issues newest-first, optionally filtered by the
// owning user. All further filtering happens client-side.
func (s *Service) ListIssues(ctx context.Context, userID string) ([]*Issue, error) {
	var (
		dms []*issueDatamodel.Issue
		err error
	)
	if userID != "" {
		dms, err = s.repo.GetByUserID(userID)
	} else {
		dms, err = s.repo.GetAll()
	}
	if err != nil {
		s.logger.Error("failed to list issues", "error", err, "user_id", userID)
		return nil, errors.NewDatabaseError("Failed to list issues", err)
	}

	return FromDataModelSlice(dms), nil
}

// UpdateIssue writes the admin triage fields. Only fields present in the
// payload are touched; updated_at is bumped in the same write. There is no
// version check: concurrent edits race and the last write wins.
func (s *Service) UpdateIssue(ctx context.Context, id string, dto UpdateIssueDTO) (*Issue, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("issue update validation failed", "error", err, "issue_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get issue for update", "error", err, "issue_id", id)
		return nil, errors.NewDatabaseError("Failed to get issue", err)
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	if dto.AssignedDepartment != nil {
		fields["assigned_department"] = *dto.AssignedDepartment
	}
	if dto.AdminRemarks != nil {
		fields["admin_remarks"] = *dto.AdminRemarks
	}

	if err := s.repo.Update(id, fields); err != nil {
		s.logger.Error("failed to update issue", "error", err, "issue_id", id)
		return nil, errors.NewDatabaseError("Failed to update issue", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to reload issue after update", "error", err, "issue_id", id)
		return nil, errors.NewDatabaseError("Failed to get issue", err)
	}

	issue := FromDataModel(updated)

	if s.bus != nil && dto.Status != nil && existing.Status != *dto.Status {
		dept := ""
		if issue.AssignedDepartment != nil {
			dept = *issue.AssignedDepartment
		}
		event := events.NewIssueStatusChangedEvent(id, existing.Status, *dto.Status, dept)
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish status changed event", "error", err, "issue_id", id)
		}
	}

	s.logger.Info("issue updated", "issue_id", id, "status", issue.Status)

	return issue, nil
}

// DeleteIssue removes the row entirely. Photos inlined on the row go with
// it; nothing else references an issue.
func (s *Service) DeleteIssue(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete issue", "error", err, "issue_id", id)
		return errors.NewDatabaseError("Failed to delete issue", err)
	}
	if affected == 0 {
		return errors.ErrIssueNotFound
	}

	s.logger.Info("issue deleted", "issue_id", id)
	return nil
}

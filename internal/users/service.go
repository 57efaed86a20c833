package users

import (
	"log/slog"
	"time"

	errors "github.com/opencivic/civic-reporter/internal"
	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(user *userDatamodel.User) error
	GetAll() ([]*userDatamodel.User, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateUser stores a sign-up profile. A duplicate email surfaces the
// unique-constraint failure from the data layer as a 500, matching the
// surface the clients were built against.
func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "user_id", dto.ID)
		return nil, err
	}

	now := time.Now()
	user := &User{
		ID:           dto.ID,
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Address:      dto.Address,
		AadharNumber: dto.AadharNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ToDataModel(user)); err != nil {
		s.logger.Error("failed to create user", "error", err, "user_id", dto.ID)
		return nil, errors.NewDatabaseError("Failed to create user", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// ListUsers returns every profile trimmed to the public summary fields.
func (s *Service) ListUsers() ([]Summary, error) {
	dms, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewDatabaseError("Failed to list users", err)
	}

	summaries := make([]Summary, len(dms))
	for i, dm := range dms {
		summaries[i] = SummaryFromDataModel(dm)
	}
	return summaries, nil
}

package stats

import (
	"log/slog"

	errors "github.com/opencivic/civic-reporter/internal"
)

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

func (s *Service) GetStatusCounts() (StatusCounts, error) {
	statuses, err := s.repo.AllStatuses()
	if err != nil {
		s.logger.Error("failed to read statuses", "error", err)
		return StatusCounts{}, errors.NewDatabaseError("Failed to compute stats", err)
	}
	return CountStatuses(statuses), nil
}

func (s *Service) GetAreaReports() ([]AreaReport, error) {
	rows, err := s.repo.AllIssueRows()
	if err != nil {
		s.logger.Error("failed to read issue rows", "error", err)
		return nil, errors.NewDatabaseError("Failed to compute area stats", err)
	}
	return AggregateAreas(rows), nil
}

package departments

import (
	"log/slog"
	"time"

	errors "github.com/opencivic/civic-reporter/internal"
	departmentDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
	Create(department *departmentDatamodel.Department) error
	Update(department *departmentDatamodel.Department) error
	Delete(id int64) (int64, error)
	Count() (int64, error)
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

func (s *Service) ListDepartments() ([]*Department, error) {
	dms, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, errors.NewDatabaseError("Failed to list departments", err)
	}
	return FromDataModelSlice(dms), nil
}

func (s *Service) CreateDepartment(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department validation failed", "error", err)
		return nil, err
	}

	active := true
	if dto.Active != nil {
		active = *dto.Active
	}

	now := time.Now()
	department := &Department{
		Name:         dto.Name,
		Description:  dto.Description,
		ContactEmail: dto.ContactEmail,
		ContactPhone: dto.ContactPhone,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	dm := ToDataModel(department)
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, errors.NewDatabaseError("Failed to create department", err)
	}

	s.logger.Info("department created", "department_id", dm.ID, "name", dm.Name)
	return FromDataModel(dm), nil
}

func (s *Service) UpdateDepartment(id int64, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department update validation failed", "error", err, "department_id", id)
		return nil, err
	}

	dm, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get department", "error", err, "department_id", id)
		return nil, errors.NewDatabaseError("Failed to get department", err)
	}

	// renames do not touch issues that already store the old name; the
	// reference is a plain string by design of the original schema
	if dto.Name != nil {
		dm.Name = *dto.Name
	}
	if dto.Description != nil {
		dm.Description = *dto.Description
	}
	if dto.ContactEmail != nil {
		dm.ContactEmail = *dto.ContactEmail
	}
	if dto.ContactPhone != nil {
		dm.ContactPhone = *dto.ContactPhone
	}
	if dto.Active != nil {
		dm.IsActive = *dto.Active
	}
	dm.UpdatedAt = time.Now()

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, errors.NewDatabaseError("Failed to update department", err)
	}

	s.logger.Info("department updated", "department_id", id, "active", dm.IsActive)
	return FromDataModel(dm), nil
}

func (s *Service) DeleteDepartment(id int64) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return errors.NewDatabaseError("Failed to delete department", err)
	}
	if affected == 0 {
		return errors.ErrDepartmentNotFound
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}

// SeedDefaults inserts the four default departments when the table is
// empty. Idempotent: a non-empty table is left exactly as it is, so
// repeated startups and the seed command never duplicate rows.
func (s *Service) SeedDefaults() error {
	count, err := s.repo.Count()
	if err != nil {
		return errors.NewDatabaseError("Failed to count departments", err)
	}
	if count > 0 {
		s.logger.Debug("departments already present, skipping seed", "count", count)
		return nil
	}

	for _, d := range Defaults {
		dept := d
		now := time.Now()
		dept.CreatedAt = now
		dept.UpdatedAt = now
		if err := s.repo.Create(ToDataModel(&dept)); err != nil {
			s.logger.Error("failed to seed department", "error", err, "name", dept.Name)
			return errors.NewDatabaseError("Failed to seed departments", err)
		}
		s.logger.Info("seeded default department", "name", dept.Name)
	}

	return nil
}

package issues

import (
	"fmt"

	errors "github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/core/common/validation"
)

// CreateIssueDTO is the intake payload. Coordinates and image_url are
// optional; everything else is required.
type CreateIssueDTO struct {
	UserID      string       `json:"user_id"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Location    string       `json:"location"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ImageURL    *string      `json:"image_url,omitempty"`
}

func (dto CreateIssueDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()
	v.Field("description", dto.Description).Required().MaxLength(5000)
	v.Field("category", dto.Category).Required()
	v.Field("location", dto.Location).Required().MaxLength(500)
	return v.Validate()
}

// UpdateIssueDTO carries the admin triage fields. Nil pointers mean
// "leave as is"; only provided fields are written.
type UpdateIssueDTO struct {
	Status             *string `json:"status,omitempty"`
	AssignedDepartment *string `json:"assigned_department,omitempty"`
	AdminRemarks       *string `json:"admin_remarks,omitempty"`
}

func (dto UpdateIssueDTO) Validate() *errors.AppError {
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		message := fmt.Sprintf("Invalid status: must be one of %s, %s, %s",
			StatusSubmitted, StatusAcknowledged, StatusResolved)
		return errors.NewValidationError(message, errors.ErrCodeInvalidStatus)
	}
	return nil
}

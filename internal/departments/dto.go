package departments

import (
	errors "github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/core/common/validation"
)

// CreateDepartmentDTO requires only a name; active defaults to true when
// the field is omitted.
type CreateDepartmentDTO struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Active       *bool  `json:"active,omitempty"`
}

func (dto CreateDepartmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	return v.Validate()
}

// UpdateDepartmentDTO carries partial updates; nil pointers leave the
// stored value untouched. Toggling active goes through here too.
type UpdateDepartmentDTO struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

func (dto UpdateDepartmentDTO) Validate() *errors.AppError {
	if dto.Name != nil && *dto.Name == "" {
		return errors.NewMissingFieldError("name")
	}
	return nil
}

package users

import (
	errors "github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/core/common/validation"
)

// CreateUserDTO is the sign-up payload. The identifier comes from the
// client; this backend never mints user IDs.
type CreateUserDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	AadharNumber *string `json:"aadhar_number,omitempty"`
}

func (dto CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("id", dto.ID).Required().MaxLength(100)
	v.Field("name", dto.Name).Required().MaxLength(200)
	v.Field("email", dto.Email).Required().Email()
	return v.Validate()
}

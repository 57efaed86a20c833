package auth

import (
	"time"

	errors "github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type MeResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

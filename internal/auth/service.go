package auth

import (
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	errors "github.com/opencivic/civic-reporter/internal"
)

// Service authenticates the single configured admin identity. There is no
// user table behind this: credentials live in configuration as an email
// plus bcrypt hash, and the civic routes never consult the session.
type Service struct {
	cfg    internalAdminConfig
	tokens TokenGenerator
	logger *slog.Logger
}

// internalAdminConfig is the slice of config this package needs; keeping
// it structural avoids importing viper-shaped structs into tests.
type internalAdminConfig struct {
	Email        string
	PasswordHash string
}

func NewService(adminEmail, adminPasswordHash string, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		cfg: internalAdminConfig{
			Email:        adminEmail,
			PasswordHash: adminPasswordHash,
		},
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate checks credentials and mints a session token. Wrong email
// and wrong password produce the same error; no probing which half failed.
func (s *Service) Authenticate(dto LoginDTO) (*TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(dto.Email), []byte(s.cfg.Email)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(dto.Password))
	if !emailMatch || passwordErr != nil {
		s.logger.Warn("admin login failed", "email", dto.Email)
		return nil, errors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(dto.Email)
	if err != nil {
		s.logger.Error("failed to generate admin token", "error", err)
		return nil, errors.NewInternalError("Failed to generate token", err)
	}

	s.logger.Info("admin signed in", "email", dto.Email)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateAccessToken verifies a presented bearer token and returns its
// claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

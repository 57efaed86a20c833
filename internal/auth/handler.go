package auth

import (
	"encoding/json"
	"net/http"

	errors "github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/transport"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*TokenResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Me validates a presented bearer token and returns the admin identity.
// This is the only route on the whole surface that inspects the token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	tokenString := h.ExtractTokenFromHeader(r)
	if tokenString == "" {
		h.WriteError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	claims, err := h.Service.ValidateAccessToken(tokenString)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	ctx := errors.ContextWithAdmin(r.Context(), claims.Email)
	h.Logger.Info("admin session validated", "email", errors.AdminFromContext(ctx))

	h.WriteJSON(w, http.StatusOK, MeResponse{
		Email: claims.Email,
		Role:  "admin",
	})
}

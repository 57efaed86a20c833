package users

import (
	"encoding/json"
	"net/http"

	"github.com/opencivic/civic-reporter/internal/transport"
)

type ServiceAPI interface {
	CreateUser(dto CreateUserDTO) (*User, error)
	ListUsers() ([]Summary, error)
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

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.CreateUser(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Service.ListUsers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if summaries == nil {
		summaries = []Summary{}
	}
	h.WriteJSON(w, http.StatusOK, summaries)
}

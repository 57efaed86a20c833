package issues

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/transport"
)

type ServiceAPI interface {
	CreateIssue(ctx context.Context, dto CreateIssueDTO) (*Issue, error)
	GetIssueByID(ctx context.Context, id string) (*Issue, error)
	ListIssues(ctx context.Context, userID string) ([]*Issue, error)
	UpdateIssue(ctx context.Context, id string, dto UpdateIssueDTO) (*Issue, error)
	DeleteIssue(ctx context.Context, id string) error
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

func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var dto CreateIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateIssue: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	issue, err := h.Service.CreateIssue(ctx, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, issue)
}

func (h *Handler) GetIssues(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	issues, err := h.Service.ListIssues(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// the reporter client expects a bare array, never null
	if issues == nil {
		issues = []*Issue{}
	}
	h.WriteJSON(w, http.StatusOK, issues)
}

func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	issue, err := h.Service.GetIssueByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, issue)
}

func (h *Handler) UpdateIssue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateIssue: invalid request body", "error", err, "issue_id", id)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	issue, err := h.Service.UpdateIssue(ctx, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, issue)
}

func (h *Handler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.DeleteIssue(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Issue deleted successfully"})
}

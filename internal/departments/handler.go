package departments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/opencivic/civic-reporter/internal/transport"
)

type ServiceAPI interface {
	ListDepartments() ([]*Department, error)
	CreateDepartment(dto CreateDepartmentDTO) (*Department, error)
	UpdateDepartment(id int64, dto UpdateDepartmentDTO) (*Department, error)
	DeleteDepartment(id int64) error
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

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.Service.ListDepartments()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if depts == nil {
		depts = []*Department{}
	}
	h.WriteJSON(w, http.StatusOK, depts)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateDepartment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dept, err := h.Service.CreateDepartment(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, dept)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.departmentID(w, r)
	if !ok {
		return
	}

	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateDepartment: invalid request body", "error", err, "department_id", id)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dept, err := h.Service.UpdateDepartment(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.departmentID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteDepartment(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Department deleted successfully"})
}

func (h *Handler) departmentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "Invalid department ID")
		return 0, false
	}
	return id, true
}

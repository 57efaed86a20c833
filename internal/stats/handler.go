package stats

import (
	"net/http"

	"github.com/opencivic/civic-reporter/internal/transport"
)

type ServiceAPI interface {
	GetStatusCounts() (StatusCounts, error)
	GetAreaReports() ([]AreaReport, error)
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

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.GetStatusCounts()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) GetAreaStats(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.GetAreaReports()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if reports == nil {
		reports = []AreaReport{}
	}
	h.WriteJSON(w, http.StatusOK, reports)
}

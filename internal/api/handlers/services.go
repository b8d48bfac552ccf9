package handlers

import (
	"net/http"

	"github.com/cropcraft/server/internal/domain/services"
)

type ServicesHandler struct {
	Service *services.Service
	Env     string
}

func NewServicesHandler(service *services.Service, env string) *ServicesHandler {
	return &ServicesHandler{Service: service, Env: env}
}

type serviceRecord struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type createServicesRequest struct {
	Services []services.Input `json:"services"`
}

func toServiceRecords(entries []services.Entry) []serviceRecord {
	records := make([]serviceRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, serviceRecord{
			ID:          entry.ID,
			Title:       entry.Title,
			Description: entry.Description,
		})
	}
	return records
}

func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, toServiceRecords(entries))
}

// CreateBatch stores the three featured entries in one write.
func (h *ServicesHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req createServicesRequest
	if !decodeJSON(w, r, &req, h.Env) {
		return
	}

	entries, err := h.Service.CreateBatch(r.Context(), req.Services)
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusCreated, toServiceRecords(entries))
}

func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.Input
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}

	updated, err := h.Service.UpdateOne(r.Context(), pathParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, serviceRecord{
		ID:          updated.ID,
		Title:       updated.Title,
		Description: updated.Description,
	})
}

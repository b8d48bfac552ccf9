package handlers

import (
	"net/http"
	"time"

	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/metrics"
)

type ContactsHandler struct {
	Service *contacts.Service
	Env     string
}

func NewContactsHandler(service *contacts.Service, env string) *ContactsHandler {
	return &ContactsHandler{Service: service, Env: env}
}

type contactRecord struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Create stores a contact form submission. The record is not echoed back.
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input contacts.Input
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}

	if _, err := h.Service.Create(r.Context(), input); err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}

	metrics.ContactsReceived.Inc()
	writeJSON(w, http.StatusCreated, messageResponse{Message: contacts.AckMessage})
}

// List returns every submission, newest first.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}

	records := make([]contactRecord, 0, len(items))
	for _, item := range items {
		records = append(records, contactRecord{
			ID:        item.ID,
			Name:      item.Name,
			Email:     item.Email,
			Message:   item.Message,
			CreatedAt: item.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, records)
}

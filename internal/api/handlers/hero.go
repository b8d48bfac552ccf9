package handlers

import (
	"net/http"

	"github.com/cropcraft/server/internal/domain/hero"
)

type HeroHandler struct {
	Service *hero.Service
	Env     string
}

func NewHeroHandler(service *hero.Service, env string) *HeroHandler {
	return &HeroHandler{Service: service, Env: env}
}

type heroRecord struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

func toHeroRecord(item *hero.Hero) *heroRecord {
	if item == nil {
		return nil
	}
	return &heroRecord{
		ID:       item.ID,
		Title:    item.Title,
		Subtitle: item.Subtitle,
		ImageURL: item.ImageURL,
	}
}

// Get responds with the landing page Hero, or null when none is stored.
func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, toHeroRecord(item))
}

func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input hero.Input
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}

	created, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusCreated, toHeroRecord(created))
}

func (h *HeroHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input hero.Input
	if !decodeJSON(w, r, &input, h.Env) {
		return
	}

	updated, err := h.Service.Update(r.Context(), pathParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, toHeroRecord(updated))
}

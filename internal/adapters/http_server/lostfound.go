package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

func (h *Handlers) lostItemRoutes(r chi.Router) {
	r.Post("/", h.createLostItem)
	r.Get("/", h.listLostItems)
	r.Get("/{id}", h.getLostItem)
	r.Put("/{id}", h.updateLostItem)
	r.Delete("/{id}", h.deleteLostItem)
	r.Post("/{id}/claim", h.claimLostItem)
	r.Post("/{id}/dispose", h.disposeLostItem)
}

func (h *Handlers) createLostItem(w http.ResponseWriter, r *http.Request) {
	var in app.LostItemInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Lost.Create(r.Context(), hotelFrom(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listLostItems(w http.ResponseWriter, r *http.Request) {
	p, ok := queryPage(w, r)
	if !ok {
		return
	}
	status := queryEnum[domain.LostItemStatus](r, "status")
	out, err := h.Lost.List(r.Context(), hotelFrom(r).ID, status, r.URL.Query().Get("q"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, p, len(out), out)
}

func (h *Handlers) getLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Lost.Get(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.LostItemInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Lost.Update(r.Context(), hotelFrom(r), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) claimLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		ClaimedBy string `json:"claimed_by"`
	}
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Lost.Claim(r.Context(), hotelFrom(r).ID, id, in.ClaimedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) disposeLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Lost.Dispose(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteLostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Lost.Delete(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

func (h *Handlers) documentRoutes(r chi.Router) {
	r.Post("/", h.createDocument)
	r.Get("/", h.listDocuments)
	r.Get("/{slug}", h.getDocument)
	r.Put("/{slug}", h.updateDocument)
	r.Delete("/{slug}", h.deleteDocument)
	r.Get("/{slug}/history", h.documentHistory)
}

func (h *Handlers) createDocument(w http.ResponseWriter, r *http.Request) {
	var in app.DocumentInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Wiki.Create(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	p, ok := queryPage(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	f := domain.DocumentFilter{HotelID: hotelFrom(r).ID, Category: q.Get("category"), Q: q.Get("q"), Page: p}
	out, err := h.Wiki.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, p, len(out), out)
}

func (h *Handlers) getDocument(w http.ResponseWriter, r *http.Request) {
	out, err := h.Wiki.Get(r.Context(), hotelFrom(r).ID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateDocument(w http.ResponseWriter, r *http.Request) {
	var in app.DocumentInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Wiki.Update(r.Context(), hotelFrom(r).ID, chi.URLParam(r, "slug"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) documentHistory(w http.ResponseWriter, r *http.Request) {
	out, err := h.Wiki.History(r.Context(), hotelFrom(r).ID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.Wiki.Delete(r.Context(), hotelFrom(r).ID, chi.URLParam(r, "slug")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

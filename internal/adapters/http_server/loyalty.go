package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_ops/internal/app"
)

func (h *Handlers) loyaltyRoutes(r chi.Router) {
	r.Post("/", h.createCard)
	r.Get("/", h.listCards)
	r.Get("/{id}", h.getCard)
	r.Put("/{id}", h.updateCard)
	r.Delete("/{id}", h.deleteCard)
	r.Post("/{id}/transactions", h.adjustPoints)
	r.Get("/{id}/transactions", h.listTransactions)
}

func (h *Handlers) createCard(w http.ResponseWriter, r *http.Request) {
	var in app.CardInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Loyalty.Create(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listCards(w http.ResponseWriter, r *http.Request) {
	p, ok := queryPage(w, r)
	if !ok {
		return
	}
	out, err := h.Loyalty.List(r.Context(), hotelFrom(r).ID, r.URL.Query().Get("q"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, p, len(out), out)
}

func (h *Handlers) getCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Loyalty.Get(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.CardInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Loyalty.Update(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Loyalty.Delete(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adjustPoints(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Delta  int    `json:"delta"`
		Reason string `json:"reason"`
	}
	if !decode(w, r, &in) {
		return
	}
	card, tx, err := h.Loyalty.AdjustPoints(r.Context(), hotelFrom(r).ID, id, in.Delta, in.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"card": card, "transaction": tx})
}

func (h *Handlers) listTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Loyalty.Transactions(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

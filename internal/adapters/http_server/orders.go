package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

func (h *Handlers) orderRoutes(r chi.Router) {
	r.Post("/", h.createOrder)
	r.Get("/", h.listOrders)
	r.Get("/{id}", h.getOrder)
	r.Put("/{id}", h.updateOrder)
	r.Delete("/{id}", h.deleteOrder)
	r.Post("/{id}/status", h.setOrderStatus)
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var in app.OrderInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Orders.Create(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := queryPage(w, r)
	if !ok {
		return
	}
	out, err := h.Orders.List(r.Context(), hotelFrom(r).ID, queryEnum[domain.OrderStatus](r, "status"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, p, len(out), out)
}

func (h *Handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Orders.Get(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.OrderInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Orders.Update(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Status domain.OrderStatus `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Orders.SetStatus(r.Context(), hotelFrom(r).ID, id, in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Orders.Delete(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

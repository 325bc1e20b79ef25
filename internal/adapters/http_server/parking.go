package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_ops/internal/app"
)

func (h *Handlers) parkingRoutes(r chi.Router) {
	r.Post("/spots", h.createSpot)
	r.Get("/spots", h.listSpots)
	r.Delete("/spots/{id}", h.deleteSpot)
	r.Get("/availability", h.availability)

	r.Post("/reservations", h.createReservation)
	r.Get("/reservations", h.listReservations)
	r.Get("/reservations/{id}", h.getReservation)
	r.Put("/reservations/{id}", h.updateReservation)
	r.Delete("/reservations/{id}", h.deleteReservation)
}

func (h *Handlers) createSpot(w http.ResponseWriter, r *http.Request) {
	var in app.SpotInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Parking.CreateSpot(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listSpots(w http.ResponseWriter, r *http.Request) {
	out, err := h.Parking.ListSpots(r.Context(), hotelFrom(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Parking.DeleteSpot(r.Context(), hotelFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	out, err := h.Parking.Availability(r.Context(), hotelFrom(r).ID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var in app.ReservationInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Parking.CreateReservation(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	out, err := h.Parking.ListReservations(r.Context(), hotelFrom(r).ID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Parking.GetReservation(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.ReservationInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Parking.UpdateReservation(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Parking.DeleteReservation(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

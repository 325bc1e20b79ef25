package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

func (h *Handlers) leadRoutes(r chi.Router) {
	r.Get("/pipeline", h.pipeline)
	r.Post("/", h.createLead)
	r.Get("/", h.listLeads)
	r.Get("/{id}", h.getLead)
	r.Put("/{id}", h.updateLead)
	r.Delete("/{id}", h.deleteLead)
	r.Post("/{id}/stage", h.moveLeadStage)
	r.Post("/{id}/activities", h.addActivity)
	r.Get("/{id}/activities", h.listActivities)
}

func (h *Handlers) pipeline(w http.ResponseWriter, r *http.Request) {
	out, err := h.CRM.Pipeline(r.Context(), hotelFrom(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createLead(w http.ResponseWriter, r *http.Request) {
	var in app.LeadInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.CRM.Create(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listLeads(w http.ResponseWriter, r *http.Request) {
	p, ok := queryPage(w, r)
	if !ok {
		return
	}
	f := domain.LeadFilter{
		HotelID: hotelFrom(r).ID,
		Stage:   queryEnum[domain.LeadStage](r, "stage"),
		Owner:   r.URL.Query().Get("owner"),
		Page:    p,
	}
	out, err := h.CRM.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, p, len(out), out)
}

func (h *Handlers) getLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.CRM.Get(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.LeadInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.CRM.Update(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) moveLeadStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Stage domain.LeadStage `json:"stage"`
		Note  string           `json:"note"`
	}
	if !decode(w, r, &in) {
		return
	}
	out, err := h.CRM.MoveStage(r.Context(), hotelFrom(r).ID, id, in.Stage, in.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) addActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Kind domain.ActivityKind `json:"kind"`
		Body string              `json:"body"`
	}
	if !decode(w, r, &in) {
		return
	}
	out, err := h.CRM.AddActivity(r.Context(), hotelFrom(r).ID, id, in.Kind, in.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.CRM.Activities(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.CRM.Delete(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

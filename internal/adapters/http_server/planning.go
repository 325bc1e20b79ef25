package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/adapters/xlsx"
	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handlers) planningRoutes(r chi.Router) {
	r.Post("/employees", h.createEmployee)
	r.Get("/employees", h.listEmployees)
	r.Put("/employees/{id}", h.updateEmployee)
	r.Post("/employees/{id}/deactivate", h.deactivateEmployee)

	r.Post("/shifts", h.createShift)
	r.Put("/shifts/{id}", h.updateShift)
	r.Delete("/shifts/{id}", h.deleteShift)
	r.Post("/shifts/{id}/move", h.moveShift)

	r.Get("/planning/{week}", h.grid)
	r.Post("/planning/{week}/publish", h.publish)
	r.Post("/planning/{week}/duplicate", h.duplicate)
	r.Get("/planning/{week}/export.xlsx", h.exportPlanning)

	r.Post("/leave-requests", h.createLeave)
	r.Get("/leave-requests", h.listLeave)
	r.Delete("/leave-requests/{id}", h.deleteLeave)
	r.Post("/leave-requests/{id}/approve", h.approveLeave)
	r.Post("/leave-requests/{id}/reject", h.rejectLeave)
}

func weekParam(w http.ResponseWriter, r *http.Request) (domain.Date, bool) {
	d, err := domain.ParseDate(chi.URLParam(r, "week"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid week", err.Error())
		return domain.Date{}, false
	}
	return d, true
}

// ---- employees ----

func (h *Handlers) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in app.EmployeeInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Planning.CreateEmployee(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listEmployees(w http.ResponseWriter, r *http.Request) {
	out, err := h.Planning.ListEmployees(r.Context(), hotelFrom(r).ID, queryBool(r, "include_inactive"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.EmployeeInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Planning.UpdateEmployee(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deactivateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Planning.DeactivateEmployee(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// ---- shifts ----

func (h *Handlers) createShift(w http.ResponseWriter, r *http.Request) {
	var in app.ShiftInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Planning.CreateShift(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) updateShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.ShiftInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Planning.UpdateShift(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) moveShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.MoveInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Planning.MoveShift(r.Context(), hotelFrom(r).ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Planning.DeleteShift(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- weekly planning ----

func (h *Handlers) grid(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(w, r)
	if !ok {
		return
	}
	view := domain.GridView(r.URL.Query().Get("view"))
	out, err := h.Planning.Grid(r.Context(), hotelFrom(r).ID, week, view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) publish(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(w, r)
	if !ok {
		return
	}
	out, err := h.Planning.Publish(r.Context(), hotelFrom(r).ID, week, queryBool(r, "force"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) duplicate(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(w, r)
	if !ok {
		return
	}
	var in struct {
		ToWeek    domain.Date `json:"to_week"`
		Overwrite bool        `json:"overwrite"`
	}
	if !decode(w, r, &in) {
		return
	}
	if in.ToWeek.IsZero() {
		writeError(w, r, domain.Invalid("to_week", "is required"))
		return
	}
	out, err := h.Planning.Duplicate(r.Context(), hotelFrom(r).ID, week, in.ToWeek, in.Overwrite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) exportPlanning(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(w, r)
	if !ok {
		return
	}
	g, err := h.Planning.Grid(r.Context(), hotelFrom(r).ID, week, domain.ViewPublished)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := xlsx.WritePlanning(&buf, g); err != nil {
		writeError(w, r, err)
		return
	}
	name := fmt.Sprintf("planning-%s-%s.xlsx", hotelFrom(r).Code, g.Week.Start)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write planning export")
	}
}

// ---- leave ----

func (h *Handlers) createLeave(w http.ResponseWriter, r *http.Request) {
	var in app.LeaveInput
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Planning.CreateLeave(r.Context(), hotelFrom(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listLeave(w http.ResponseWriter, r *http.Request) {
	emp, ok := queryInt64(w, r, "employee_id")
	if !ok {
		return
	}
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	f := domain.LeaveFilter{
		HotelID:    hotelFrom(r).ID,
		EmployeeID: emp,
		Status:     queryEnum[domain.LeaveStatus](r, "status"),
		From:       from,
		To:         to,
	}
	out, err := h.Planning.ListLeave(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) approveLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Planning.ApproveLeave(r.Context(), hotelFrom(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) rejectLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Comment string `json:"comment"`
	}
	if !decodeOptional(w, r, &in) {
		return
	}
	out, err := h.Planning.RejectLeave(r.Context(), hotelFrom(r).ID, id, in.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) deleteLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Planning.DeleteLeave(r.Context(), hotelFrom(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

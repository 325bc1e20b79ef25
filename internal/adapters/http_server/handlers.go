// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	Tenants   *app.TenantService
	Orders    *app.OrderService
	Lost      *app.LostFoundService
	Loyalty   *app.LoyaltyService
	Parking   *app.ParkingService
	CRM       *app.CRMService
	Wiki      *app.WikiService
	Planning  *app.PlanningService
	Dashboard *app.DashboardService
	Limiter   *TenantLimiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
	Count  int    `json:"count,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/hotels", func(r chi.Router) {
		r.Post("/", h.createHotel)
		r.Get("/", h.listHotels)

		r.Route("/{hotelID}", func(r chi.Router) {
			r.Use(Tenant(h.Tenants))
			r.Use(h.Limiter.Middleware)

			r.Get("/", h.getHotel)
			r.Get("/dashboard", h.dashboard)

			r.Route("/orders", h.orderRoutes)
			r.Route("/lost-items", h.lostItemRoutes)
			r.Route("/loyalty-cards", h.loyaltyRoutes)
			r.Route("/parking", h.parkingRoutes)
			r.Route("/leads", h.leadRoutes)
			r.Route("/documents", h.documentRoutes)
			h.planningRoutes(r)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	var ce *domain.ConflictError
	switch {
	case errors.As(err, &ve):
		writeProblemBody(w, problem{Type: "about:blank", Title: "Invalid input", Status: http.StatusBadRequest, Detail: ve.Error(), Field: ve.Field})
	case errors.As(err, &ce):
		writeProblemBody(w, problem{Type: "about:blank", Title: "Conflict", Status: http.StatusConflict, Detail: ce.Reason, Count: ce.Count})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrInvalid):
		writeProblem(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers GETs with an ETag and honours If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	if r.Method == http.MethodGet && status == http.StatusOK && etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed body", err.Error())
		return false
	}
	return true
}

// decodeOptional accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Malformed body", err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", name+" must be a positive number")
		return 0, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, key string) (domain.Date, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return domain.Date{}, true
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", fmt.Sprintf("%s: %v", key, err))
		return domain.Date{}, false
	}
	return d, true
}

func queryInt64(w http.ResponseWriter, r *http.Request, key string) (*int64, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", key+" must be a number")
		return nil, false
	}
	return &n, true
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// queryPage reads ?limit= and ?offset=. Absent values fall back to the defaults.
func queryPage(w http.ResponseWriter, r *http.Request) (domain.Page, bool) {
	var p domain.Page
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > domain.MaxPageSize {
			writeProblem(w, http.StatusBadRequest, "Invalid query", fmt.Sprintf("limit must be between 1 and %d", domain.MaxPageSize))
			return p, false
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid query", "offset must be a non-negative number")
			return p, false
		}
		p.Offset = n
	}
	return p.Normalized(), true
}

// writePage writes one page of a list. A full page advertises the offset of
// the next one in X-Next-Offset.
func writePage(w http.ResponseWriter, r *http.Request, p domain.Page, n int, v any) {
	if n >= p.Limit {
		w.Header().Set("X-Next-Offset", strconv.Itoa(p.Offset+p.Limit))
	}
	writeJSON(w, r, http.StatusOK, v)
}

// queryEnum returns nil when the parameter is absent.
func queryEnum[T ~string](r *http.Request, key string) *T {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	t := T(v)
	return &t
}

// ---- hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.Hotel
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Tenants.CreateHotel(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Tenants.ListHotels(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, hotelFrom(r))
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.Dashboard.Summary(r.Context(), hotelFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

package domain

import (
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // hotel zones resolve on images without zoneinfo
)

// Hotel is a tenant. Every other record is scoped by its ID.
type Hotel struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

var hotelCodeRe = regexp.MustCompile(`^[A-Z0-9-]{2,16}$`)

// Normalize upper-cases the code and fills the default timezone.
func (h *Hotel) Normalize() {
	h.Code = strings.ToUpper(strings.TrimSpace(h.Code))
	h.Name = strings.TrimSpace(h.Name)
	if h.Timezone == "" {
		h.Timezone = "UTC"
	}
}

func (h Hotel) Validate() error {
	if !hotelCodeRe.MatchString(h.Code) {
		return Invalid("code", "must be 2-16 characters of A-Z, 0-9 or '-'")
	}
	if h.Name == "" {
		return Invalid("name", "is required")
	}
	if _, err := time.LoadLocation(h.Timezone); err != nil {
		return Invalid("timezone", "unknown time zone")
	}
	return nil
}

// Today returns the current calendar day in the hotel's time zone.
func (h Hotel) Today(now time.Time) Date {
	if loc, err := time.LoadLocation(h.Timezone); err == nil {
		now = now.In(loc)
	}
	return DateOf(now)
}

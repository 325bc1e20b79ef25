package domain

import (
	"strings"
	"time"
	"unicode"
)

type Document struct {
	ID        int64     `json:"id"`
	HotelID   int64     `json:"hotel_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Body      string    `json:"body"`
	Version   int       `json:"version"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Revision struct {
	DocumentID int64     `json:"document_id"`
	Version    int       `json:"version"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type DocumentFilter struct {
	HotelID  int64
	Category string
	Q        string
	Page
}

var accentFold = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ý", "y", "ÿ", "y",
	"œ", "oe", "æ", "ae", "ß", "ss",
)

// Slugify turns a title into a lower-case, dash separated ASCII slug.
func Slugify(title string) string {
	s := accentFold.Replace(strings.ToLower(strings.TrimSpace(title)))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > 80 {
		out = strings.TrimSuffix(out[:80], "-")
	}
	return out
}

package works

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studio-backend/internal/domain/works"
)

// ---------- requests

// i18n fields arrive as JSON-encoded objects inside multipart text
// fields, e.g. title={"az":"...","en":"...","ru":"..."}.

func parseI18nPatch(field, raw string) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("Invalid %s format", field)
	}
	return m, nil
}

func parseRequiredI18n(field, raw string) (map[string]string, error) {
	required := fmt.Errorf("%s is required for languages %s", fieldLabel(field), strings.Join(works.Langs, ", "))
	if raw == "" {
		return nil, required
	}
	m, err := parseI18nPatch(field, raw)
	if err != nil {
		return nil, err
	}
	for _, lang := range works.Langs {
		if strings.TrimSpace(m[lang]) == "" {
			return nil, required
		}
	}
	return m, nil
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

type DeleteImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// ---------- responses

// WorkDTO is the wire shape of a work. Title, Description and Location
// are maps keyed by language, narrowed to plain strings when a language
// filter matches.
type WorkDTO struct {
	ProjectID   string      `json:"projectId"`
	Images      []string    `json:"images"`
	Area        float64     `json:"area"`
	Category    string      `json:"category"`
	Title       interface{} `json:"title"`
	Description interface{} `json:"description"`
	Location    interface{} `json:"location"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

package repositories

import (
	"encoding/json"
	"time"

	"github.com/volatiletech/null/v8"

	"logichain.backend/internal/domain/entities"
)

// marshalJSON serializes a nested structure for a JSON text column.
// Marshal failures cannot happen for the value types involved, so the
// fallback keeps the column a valid empty object.
func marshalJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// unmarshalJSON decodes a stored JSON column into out. Malformed or empty
// stored data degrades to the zero value so KPI computation stays
// available over dirty historical rows.
func unmarshalJSON(raw string, out interface{}) {
	if raw == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), out)
}

var dateLayouts = []string{
	entities.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseDate turns a stored date text into a null.Time. Unparsable values
// come back invalid and are excluded from date-based aggregation.
func parseDate(raw string) null.Time {
	if raw == "" {
		return null.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return null.TimeFrom(t)
		}
	}
	return null.Time{}
}

func parseDatePtr(raw *string) null.Time {
	if raw == nil {
		return null.Time{}
	}
	return parseDate(*raw)
}

func formatDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(entities.DateLayout)
}

func formatDatePtr(t null.Time) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(entities.DateLayout)
	return &s
}

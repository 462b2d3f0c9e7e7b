package history

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"docpress/pkg/query"
)

// Filters contains optional criteria for filtering history queries.
type Filters struct {
	WPPostID  *int
	Statuses  []Status
	CreatedBy *string
	From      *time.Time
	To        *time.Time
}

// dateOnly accepts bare dates in filter parameters.
const dateOnly = "2006-01-02"

// FiltersFromQuery extracts history filters from URL query parameters.
// The status parameter accepts a comma-separated list; unknown statuses
// are dropped. Timestamps accept RFC 3339 or bare dates; a bare "to" date
// is inclusive of its whole day.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("wp_post_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			f.WPPostID = &id
		}
	}

	for _, v := range strings.Split(values.Get("status"), ",") {
		status := Status(strings.TrimSpace(v))
		if status.Valid() {
			f.Statuses = append(f.Statuses, status)
		}
	}

	if v := values.Get("created_by"); v != "" {
		f.CreatedBy = &v
	}

	if v := values.Get("from"); v != "" {
		if t, ok := parseFilterTime(v, false); ok {
			f.From = &t
		}
	}

	if v := values.Get("to"); v != "" {
		if t, ok := parseFilterTime(v, true); ok {
			f.To = &t
		}
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.WPPostID != nil {
		b.WhereEquals("WPPostID", *f.WPPostID)
	}
	switch len(f.Statuses) {
	case 0:
	case 1:
		b.WhereEquals("Status", string(f.Statuses[0]))
	default:
		values := make([]any, len(f.Statuses))
		for i, s := range f.Statuses {
			values[i] = string(s)
		}
		b.WhereIn("Status", values)
	}
	b.WhereContains("CreatedBy", f.CreatedBy)
	if f.From != nil {
		b.WhereGte("CreatedAt", *f.From)
	}
	if f.To != nil {
		b.WhereLte("CreatedAt", *f.To)
	}
	return b
}

func parseFilterTime(v string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateOnly, v); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, true
	}
	return time.Time{}, false
}

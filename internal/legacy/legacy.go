// Package legacy reads trip documents exported from the old store, where the
// date fields were written under several names and in several encodings.
// Canonicalize resolves each document once so the rest of the system only
// ever sees startDate and endDate.
package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pkordes/tripjournal/internal/daterange"
	"github.com/pkordes/tripjournal/internal/domain"
)

var (
	// ErrMissingDate means none of a date's aliases is present.
	ErrMissingDate = errors.New("legacy: date missing")
	// ErrAmbiguousDate means two aliases of the same date disagree.
	ErrAmbiguousDate = errors.New("legacy: aliases disagree")
	// ErrBadDate means a date value has an unreadable type or format.
	ErrBadDate = errors.New("legacy: unreadable date")
)

// Field names seen in old documents, most canonical first.
var (
	startAliases = []string{"startDate", "start_date", "start", "startAt"}
	endAliases   = []string{"endDate", "end_date", "end", "endAt"}
)

// Record is one canonical trip document.
type Record struct {
	Slug          string
	OwnerID       string
	Title         string
	StartLocation string
	Destination   string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	Visibility    domain.Visibility
	AllowedUsers  []string
}

// Canonicalize resolves the date aliases of doc and returns the record.
// Dates may be "2006-01-02", RFC 3339, epoch milliseconds, or a timestamp
// object carrying "_seconds" (or "seconds"). Timestamps are reduced to their
// UTC calendar date.
func Canonicalize(doc map[string]any) (Record, error) {
	start, err := resolveDate(doc, startAliases)
	if err != nil {
		return Record{}, fmt.Errorf("start date: %w", err)
	}
	end, err := resolveDate(doc, endAliases)
	if err != nil {
		return Record{}, fmt.Errorf("end date: %w", err)
	}

	rec := Record{
		Slug:          str(doc, "slug"),
		OwnerID:       str(doc, "ownerId", "owner_id", "uid"),
		Title:         str(doc, "title"),
		StartLocation: str(doc, "startLocation", "start_location"),
		Destination:   str(doc, "destination"),
		Description:   str(doc, "description"),
		StartDate:     start,
		EndDate:       end,
		Visibility:    domain.Visibility(strings.ToLower(str(doc, "visibility"))),
		AllowedUsers:  strs(doc, "allowedUsers", "allowed_users"),
	}
	if rec.Visibility == "" {
		rec.Visibility = domain.VisibilityPrivate
	}
	return rec, nil
}

// Decode reads documents from r, either a JSON array or a stream of objects
// (one per line, as produced by most exporters).
func Decode(r io.Reader) ([]map[string]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("legacy.Decode: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if bytes.HasPrefix(raw, []byte("[")) {
		var docs []map[string]any
		if err := dec.Decode(&docs); err != nil {
			return nil, fmt.Errorf("legacy.Decode: %w", err)
		}
		return docs, nil
	}

	var docs []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("legacy.Decode: document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
}

func resolveDate(doc map[string]any, aliases []string) (time.Time, error) {
	var (
		found time.Time
		from  string
	)
	for _, name := range aliases {
		v, ok := doc[name]
		if !ok || v == nil {
			continue
		}
		d, err := parseDate(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", name, err)
		}
		if from != "" && !d.Equal(found) {
			return time.Time{}, fmt.Errorf("%w: %s=%s, %s=%s", ErrAmbiguousDate,
				from, daterange.Format(found), name, daterange.Format(d))
		}
		found, from = d, name
	}
	if from == "" {
		return time.Time{}, ErrMissingDate
	}
	return found, nil
}

func parseDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case string:
		d, err := daterange.ParseDate(x)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, x)
		}
		return d, nil
	case json.Number:
		ms, err := x.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s", ErrBadDate, x)
		}
		return fromMillis(ms)
	case float64:
		return fromMillis(x)
	case int64:
		return fromMillis(float64(x))
	case map[string]any:
		for _, key := range []string{"_seconds", "seconds"} {
			if s, ok := x[key]; ok {
				secs, err := number(s)
				if err != nil {
					return time.Time{}, err
				}
				return daterange.Date(time.Unix(int64(secs), 0).UTC()), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %T", ErrBadDate, v)
}

func fromMillis(ms float64) (time.Time, error) {
	if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadDate, ms)
	}
	return daterange.Date(time.UnixMilli(int64(ms)).UTC()), nil
}

func number(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err == nil {
			return f, nil
		}
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("%w: seconds %v", ErrBadDate, v)
}

func str(doc map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func strs(doc map[string]any, keys ...string) []string {
	for _, k := range keys {
		list, ok := doc[k].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

// Date parses a date sent by a client. A bare "2006-01-02" is midnight in
// loc, since the shop owner means their local calendar day; full RFC 3339
// timestamps are taken as they are. An empty string yields the zero time so
// that required checks downstream name the field.
func Date(field, s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, validate.Field(field, "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

// QueryDate is Date for an optional query parameter. It returns nil when the
// parameter is absent.
func QueryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := Date(name, s, loc)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// QueryInt reads an optional positive integer. Absent means 0.
func QueryInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, validate.Field(name, "must be a positive integer")
	}

	return n, nil
}

// QueryDecimal reads an optional positive number. Absent means zero.
func QueryDecimal(r *http.Request, name string) (decimal.Decimal, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, validate.Field(name, "must be a positive number")
	}

	return d, nil
}

// QueryRange reads the optional start_date and end_date parameters. A
// date-only end_date covers that whole day.
func QueryRange(r *http.Request, loc *time.Location) (start, end *time.Time, err error) {
	if start, err = QueryDate(r, "start_date", loc); err != nil {
		return nil, nil, err
	}

	if end, err = QueryDate(r, "end_date", loc); err != nil {
		return nil, nil, err
	}

	if end != nil && len(r.URL.Query().Get("end_date")) == len(time.DateOnly) {
		end = new(end.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}

	return start, end, nil
}

package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

// Accepted layouts for sighting dates, as sent by datetime-local inputs.
var dateLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"}

// inputDateLayout is how dates are written back into datetime-local inputs.
const inputDateLayout = "2006-01-02T15:04:05"

// form decodes submitted values, collecting a message per bad field
// instead of failing on the first one.
type form struct {
	c    echo.Context
	errs model.FieldErrors
}

func newForm(c echo.Context) *form {
	return &form{c: c, errs: model.FieldErrors{}}
}

func (f *form) str(name string) string {
	return strings.TrimSpace(f.c.FormValue(name))
}

// optionalID parses an id field that may be left blank.
func (f *form) optionalID(name string) int64 {
	raw := f.str(name)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		f.errs.Add(name, "must be a positive whole number")
		return 0
	}
	return id
}

// requiredID parses a select whose value must name a record.
func (f *form) requiredID(name string) int64 {
	if f.str(name) == "" {
		f.errs.Add(name, "must be selected")
		return 0
	}
	return f.optionalID(name)
}

// float parses a decimal field and returns the raw text for redisplay.
func (f *form) float(name string) (float64, string) {
	raw := f.str(name)
	if raw == "" {
		f.errs.Add(name, "cannot be empty")
		return 0, raw
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.errs.Add(name, "must be a number")
		return 0, raw
	}
	return v, raw
}

// date parses a datetime-local field as UTC.
func (f *form) date(name string) (time.Time, string) {
	raw := f.str(name)
	if raw == "" {
		f.errs.Add(name, "cannot be empty")
		return time.Time{}, raw
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, raw
		}
	}
	f.errs.Add(name, "must be a date and time")
	return time.Time{}, raw
}

// ids parses a multi-select.  Unparsable entries are reported once.
func (f *form) ids(name string) []int64 {
	values, err := f.c.FormParams()
	if err != nil {
		f.errs.Add(name, "could not be read")
		return nil
	}
	out := make([]int64, 0, len(values[name]))
	for _, raw := range values[name] {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id <= 0 {
			f.errs.Add(name, "contains an invalid selection")
			continue
		}
		out = append(out, id)
	}
	return out
}

// check normalizes v, runs model validation on it and folds the messages
// in.  Fields that already failed to decode keep their decoding message.
func (f *form) check(v any) error {
	if n, ok := v.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	err := model.Validate(v)
	var fe model.FieldErrors
	if errors.As(err, &fe) {
		for k, msg := range fe {
			f.errs.Add(k, msg)
		}
		return nil
	}
	return err
}

// valid reports whether no field failed.
func (f *form) valid() bool {
	return len(f.errs) == 0
}

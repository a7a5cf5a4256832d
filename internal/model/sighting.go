package model

import "time"

// Sighting records one superhero seen at one location at one moment.
//
// Fields:
//  ID          – primary key identifier.
//  LocationID  – foreign key to location.id.
//  SuperheroID – foreign key to superhero.id.
//  Date        – when the sighting happened, whole seconds, UTC.
type Sighting struct {
	ID          int64     `db:"id" json:"id"`
	LocationID  int64     `db:"location_id" json:"location_id" validate:"required,gt=0"`
	SuperheroID int64     `db:"superhero_id" json:"superhero_id" validate:"required,gt=0"`
	Date        time.Time `db:"date" json:"date" validate:"required"`
}

// Normalize converts the date to UTC and drops sub-second precision.
func (s *Sighting) Normalize() {
	s.Date = NormalizeDate(s.Date)
}

// NormalizeDate converts t to UTC truncated to whole seconds.  The zero time
// is returned unchanged so that required-field validation still fires.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Second)
}

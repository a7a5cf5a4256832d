package model

import (
	"math"
	"strings"
)

// Location is a place where superheroes can be sighted.  Coordinates are
// kept with six fractional digits, matching the DECIMAL(9,6) columns.
type Location struct {
	ID            int64   `db:"id" json:"id"`                                                 // location.id
	Name          string  `db:"name" json:"name" validate:"required,max=50"`                  // location.name
	StreetAddress string  `db:"street_address" json:"street_address" validate:"max=50"`       // location.street_address
	City          string  `db:"city" json:"city" validate:"required,max=50,placename"`        // location.city
	State         string  `db:"state" json:"state" validate:"omitempty,max=2,alpha"`          // location.state
	Country       string  `db:"country" json:"country" validate:"required,max=2,alpha"`       // location.country
	Latitude      float64 `db:"latitude" json:"latitude" validate:"min=-90,max=90"`           // location.latitude
	Longitude     float64 `db:"longitude" json:"longitude" validate:"min=-180,max=180"`       // location.longitude
	Description   string  `db:"description" json:"description" validate:"required,max=100"`   // location.description
}

// Normalize trims text fields, upper-cases the state and country codes and
// rounds both coordinates to six fractional digits.
func (l *Location) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.StreetAddress = strings.TrimSpace(l.StreetAddress)
	l.City = strings.TrimSpace(l.City)
	l.State = strings.ToUpper(strings.TrimSpace(l.State))
	l.Country = strings.ToUpper(strings.TrimSpace(l.Country))
	l.Description = strings.TrimSpace(l.Description)
	l.Latitude = RoundCoordinate(l.Latitude)
	l.Longitude = RoundCoordinate(l.Longitude)
}

// RoundCoordinate rounds a latitude or longitude to six fractional digits.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

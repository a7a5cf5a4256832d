package model

import "strings"

// Superpower is an ability that any number of superheroes may have.  The
// association with superheroes lives in the `superhero_superpower` bridge
// table; Superheroes is filled in by the repository and is not a column.
type Superpower struct {
	ID          int64       `db:"id" json:"id"`                               // superpower.id
	Name        string      `db:"name" json:"name" validate:"required,max=50"` // superpower.name
	Superheroes []Superhero `db:"-" json:"superheroes"`                       // heroes holding this power
}

// Normalize trims the name.
func (p *Superpower) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
}

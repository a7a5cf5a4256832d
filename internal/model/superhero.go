package model

import "strings"

// Superhero is a hero that can be sighted, hold superpowers and belong to
// organizations.  This struct corresponds to a row in the `superhero` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the hero.
//  Description – short free-text description.
type Superhero struct {
	ID          int64  `db:"id" json:"id"`                                             // superhero.id
	Name        string `db:"name" json:"name" validate:"required,max=50"`               // superhero.name
	Description string `db:"description" json:"description" validate:"required,max=100"` // superhero.description
}

// Normalize trims surrounding whitespace from every text field.
func (s *Superhero) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
}

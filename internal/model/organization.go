package model

import "strings"

// Organization is a group of superheroes (a team, agency or guild).
// Membership is stored in the `organization_superhero` bridge table and is
// loaded into Members by the repository.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – organization name.
//  Description   – optional description.
//  StreetAddress – optional street address of its headquarters.
//  City          – city of the headquarters (letters, spaces and apostrophes).
//  Country       – two letter country code.
//  Members       – superheroes affiliated with the organization.
type Organization struct {
	ID            int64       `db:"id" json:"id"`
	Name          string      `db:"name" json:"name" validate:"required,max=50"`
	Description   string      `db:"description" json:"description" validate:"max=100"`
	StreetAddress string      `db:"street_address" json:"street_address" validate:"max=50"`
	City          string      `db:"city" json:"city" validate:"required,max=50,placename"`
	Country       string      `db:"country" json:"country" validate:"required,max=2,alpha"`
	Members       []Superhero `db:"-" json:"members"`
}

// Normalize trims text fields and upper-cases the country code.
func (o *Organization) Normalize() {
	o.Name = strings.TrimSpace(o.Name)
	o.Description = strings.TrimSpace(o.Description)
	o.StreetAddress = strings.TrimSpace(o.StreetAddress)
	o.City = strings.TrimSpace(o.City)
	o.Country = strings.ToUpper(strings.TrimSpace(o.Country))
}

// MemberIDs returns the ids of the current members in list order.
func (o *Organization) MemberIDs() []int64 {
	ids := make([]int64, 0, len(o.Members))
	for _, m := range o.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

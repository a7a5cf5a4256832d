package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

const superheroSection = "superhero"

// superheroForm is the payload of the superhero add/edit template.
type superheroForm struct {
	Hero           model.Superhero
	Powers         []model.Superpower
	Organizations  []model.Organization
	SelectedPowers []int64
	SelectedOrgs   []int64
	Action         string
	Edit           bool
}

// ListSuperheroes handles GET /superhero.
func (h *Handler) ListSuperheroes(c echo.Context) error {
	heroes, err := h.Store.Superheroes.List(c.Request().Context())
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "superhero/list", "Superheroes", superheroSection, heroes)
}

// SuperheroDetails handles GET /superhero/:id.
func (h *Handler) SuperheroDetails(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	profile, err := h.Heroes.Profile(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Superhero")
	}
	return page(c, http.StatusOK, "superhero/details", profile.Superhero.Name, superheroSection, profile)
}

// AddSuperheroForm handles GET /superhero/add.
func (h *Handler) AddSuperheroForm(c echo.Context) error {
	data, err := h.superheroForm(c.Request().Context(), model.Superhero{}, nil, nil, false)
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "superhero/form", "Add superhero", superheroSection, data)
}

// AddSuperhero handles POST /superhero/add.
func (h *Handler) AddSuperhero(c echo.Context) error {
	ctx := c.Request().Context()
	f := newForm(c)
	hero := model.Superhero{
		ID:          f.optionalID("id"),
		Name:        f.str("name"),
		Description: f.str("description"),
	}
	powerIDs := f.ids("superpowers")
	orgIDs := f.ids("organizations")
	if err := f.check(&hero); err != nil {
		return err
	}

	if !f.valid() {
		return h.superheroFormPage(c, http.StatusUnprocessableEntity, hero, powerIDs, orgIDs, false, f.errs, "")
	}

	requested := hero.ID
	if err := h.Heroes.Create(ctx, &hero, powerIDs, orgIDs); err != nil {
		status, msg, ok := storeFailure(err, "superhero")
		if !ok {
			return err
		}
		hero.ID = requested
		return h.superheroFormPage(c, status, hero, powerIDs, orgIDs, false, nil, msg)
	}
	return redirect(c, "/superhero")
}

// EditSuperheroForm handles GET /superhero/:id/edit.
func (h *Handler) EditSuperheroForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	profile, err := h.Heroes.Profile(ctx, id)
	if err != nil {
		return lookupError(err, "Superhero")
	}
	data, err := h.superheroForm(ctx, profile.Superhero, profile.PowerIDs(), profile.OrganizationIDs(), true)
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "superhero/form", "Edit "+profile.Superhero.Name, superheroSection, data)
}

// EditSuperhero handles POST /superhero/:id/edit.  The affiliations are
// replaced by the submitted selection.
func (h *Handler) EditSuperhero(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	f := newForm(c)
	hero := model.Superhero{
		ID:          id,
		Name:        f.str("name"),
		Description: f.str("description"),
	}
	powerIDs := f.ids("superpowers")
	orgIDs := f.ids("organizations")
	if err := f.check(&hero); err != nil {
		return err
	}
	if !f.valid() {
		return h.superheroFormPage(c, http.StatusUnprocessableEntity, hero, powerIDs, orgIDs, true, f.errs, "")
	}

	ok, err := h.Heroes.Update(ctx, &hero, powerIDs, orgIDs)
	if err != nil {
		status, msg, known := storeFailure(err, "superhero")
		if !known {
			return err
		}
		return h.superheroFormPage(c, status, hero, powerIDs, orgIDs, true, nil, msg)
	}
	if !ok {
		return notFound("Superhero")
	}
	return redirect(c, fmt.Sprintf("/superhero/%d", id))
}

// DeleteSuperheroForm handles GET /superhero/:id/delete.
func (h *Handler) DeleteSuperheroForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	hero, err := h.Store.Superheroes.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Superhero")
	}
	return page(c, http.StatusOK, "confirm_delete", "Delete "+hero.Name, superheroSection, confirmDelete{
		Kind:    "superhero",
		Name:    hero.Name,
		Warning: "All sightings of this superhero, and their memberships and powers, will be removed.",
		Action:  fmt.Sprintf("/superhero/%d/delete", id),
		Cancel:  fmt.Sprintf("/superhero/%d", id),
	})
}

// DeleteSuperhero handles POST /superhero/:id/delete.
func (h *Handler) DeleteSuperhero(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ok, err := h.Store.Superheroes.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Superhero")
	}
	return redirect(c, "/superhero")
}

func (h *Handler) superheroForm(ctx context.Context, hero model.Superhero, powerIDs, orgIDs []int64, edit bool) (superheroForm, error) {
	powers, err := h.Store.Superpowers.List(ctx)
	if err != nil {
		return superheroForm{}, err
	}
	orgs, err := h.Store.Organizations.List(ctx)
	if err != nil {
		return superheroForm{}, err
	}
	action := "/superhero/add"
	if edit {
		action = fmt.Sprintf("/superhero/%d/edit", hero.ID)
	}
	return superheroForm{
		Hero:           hero,
		Powers:         powers,
		Organizations:  orgs,
		SelectedPowers: powerIDs,
		SelectedOrgs:   orgIDs,
		Action:         action,
		Edit:           edit,
	}, nil
}

func (h *Handler) superheroFormPage(c echo.Context, status int, hero model.Superhero, powerIDs, orgIDs []int64,
	edit bool, errs model.FieldErrors, msg string) error {
	data, err := h.superheroForm(c.Request().Context(), hero, powerIDs, orgIDs, edit)
	if err != nil {
		return err
	}
	title := "Add superhero"
	if edit {
		title = "Edit superhero"
	}
	return formPage(c, status, "superhero/form", title, superheroSection, errs, msg, data)
}

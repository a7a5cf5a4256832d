package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

const superpowerSection = "superpower"

// superpowerForm is the payload of the superpower add/edit template.
type superpowerForm struct {
	Power       model.Superpower
	Superheroes []model.Superhero
	Selected    []int64
	Action      string
	Edit        bool
}

// ListSuperpowers handles GET /superpower.
func (h *Handler) ListSuperpowers(c echo.Context) error {
	powers, err := h.Store.Superpowers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "superpower/list", "Superpowers", superpowerSection, powers)
}

// SuperpowerDetails handles GET /superpower/:id and lists the heroes
// holding the power.
func (h *Handler) SuperpowerDetails(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	power, err := h.Store.Superpowers.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Superpower")
	}
	return page(c, http.StatusOK, "superpower/details", power.Name, superpowerSection, power)
}

// AddSuperpowerForm handles GET /superpower/add.
func (h *Handler) AddSuperpowerForm(c echo.Context) error {
	return h.superpowerFormPage(c, http.StatusOK, model.Superpower{}, nil, false, nil, "")
}

// AddSuperpower handles POST /superpower/add.
func (h *Handler) AddSuperpower(c echo.Context) error {
	f := newForm(c)
	power := model.Superpower{ID: f.optionalID("id"), Name: f.str("name")}
	heroIDs := f.ids("superheroes")
	if err := f.check(&power); err != nil {
		return err
	}
	if !f.valid() {
		return h.superpowerFormPage(c, http.StatusUnprocessableEntity, power, heroIDs, false, f.errs, "")
	}

	requested := power.ID
	power.Superheroes = heroRefs(heroIDs)
	if err := h.Store.Superpowers.Create(c.Request().Context(), &power); err != nil {
		status, msg, ok := storeFailure(err, "superpower")
		if !ok {
			return err
		}
		power.ID = requested
		return h.superpowerFormPage(c, status, power, heroIDs, false, nil, msg)
	}
	return redirect(c, "/superpower")
}

// EditSuperpowerForm handles GET /superpower/:id/edit.
func (h *Handler) EditSuperpowerForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	power, err := h.Store.Superpowers.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Superpower")
	}
	return h.superpowerFormPage(c, http.StatusOK, *power, heroIDsOf(power.Superheroes), true, nil, "")
}

// EditSuperpower handles POST /superpower/:id/edit.  The holders of the
// power are replaced by the submitted selection.
func (h *Handler) EditSuperpower(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := newForm(c)
	power := model.Superpower{ID: id, Name: f.str("name")}
	heroIDs := f.ids("superheroes")
	if err := f.check(&power); err != nil {
		return err
	}
	if !f.valid() {
		return h.superpowerFormPage(c, http.StatusUnprocessableEntity, power, heroIDs, true, f.errs, "")
	}

	power.Superheroes = heroRefs(heroIDs)
	ok, err := h.Store.Superpowers.Update(c.Request().Context(), &power)
	if err != nil {
		status, msg, known := storeFailure(err, "superpower")
		if !known {
			return err
		}
		return h.superpowerFormPage(c, status, power, heroIDs, true, nil, msg)
	}
	if !ok {
		return notFound("Superpower")
	}
	return redirect(c, fmt.Sprintf("/superpower/%d", id))
}

// DeleteSuperpowerForm handles GET /superpower/:id/delete.
func (h *Handler) DeleteSuperpowerForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	power, err := h.Store.Superpowers.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Superpower")
	}
	return page(c, http.StatusOK, "confirm_delete", "Delete "+power.Name, superpowerSection, confirmDelete{
		Kind:   "superpower",
		Name:   power.Name,
		Action: fmt.Sprintf("/superpower/%d/delete", id),
		Cancel: fmt.Sprintf("/superpower/%d", id),
	})
}

// DeleteSuperpower handles POST /superpower/:id/delete.
func (h *Handler) DeleteSuperpower(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ok, err := h.Store.Superpowers.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Superpower")
	}
	return redirect(c, "/superpower")
}

func (h *Handler) superpowerFormPage(c echo.Context, status int, power model.Superpower, selected []int64,
	edit bool, errs model.FieldErrors, msg string) error {
	heroes, err := h.Store.Superheroes.List(c.Request().Context())
	if err != nil {
		return err
	}
	data := superpowerForm{
		Power:       power,
		Superheroes: heroes,
		Selected:    selected,
		Action:      "/superpower/add",
		Edit:        edit,
	}
	title := "Add superpower"
	if edit {
		data.Action = fmt.Sprintf("/superpower/%d/edit", power.ID)
		title = "Edit superpower"
	}
	return formPage(c, status, "superpower/form", title, superpowerSection, errs, msg, data)
}

// heroRefs turns selected ids into records carrying only their id, which
// is all the bridge inserts need.
func heroRefs(ids []int64) []model.Superhero {
	out := make([]model.Superhero, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, model.Superhero{ID: id})
	}
	return out
}

func heroIDsOf(heroes []model.Superhero) []int64 {
	ids := make([]int64, 0, len(heroes))
	for _, hero := range heroes {
		ids = append(ids, hero.ID)
	}
	return ids
}

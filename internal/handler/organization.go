package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/model"
)

const organizationSection = "organization"

// organizationForm is the payload of the organization add/edit template.
type organizationForm struct {
	Org         model.Organization
	Superheroes []model.Superhero
	Selected    []int64
	Action      string
	Edit        bool
}

// ListOrganizations handles GET /organization.
func (h *Handler) ListOrganizations(c echo.Context) error {
	orgs, err := h.Store.Organizations.List(c.Request().Context())
	if err != nil {
		return err
	}
	return page(c, http.StatusOK, "organization/list", "Organizations", organizationSection, orgs)
}

// OrganizationDetails handles GET /organization/:id and lists its members.
func (h *Handler) OrganizationDetails(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	org, err := h.Store.Organizations.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Organization")
	}
	return page(c, http.StatusOK, "organization/details", org.Name, organizationSection, org)
}

// AddOrganizationForm handles GET /organization/add.
func (h *Handler) AddOrganizationForm(c echo.Context) error {
	return h.organizationFormPage(c, http.StatusOK, model.Organization{}, nil, false, nil, "")
}

// AddOrganization handles POST /organization/add.
func (h *Handler) AddOrganization(c echo.Context) error {
	f := newForm(c)
	org := readOrganization(f)
	org.ID = f.optionalID("id")
	memberIDs := f.ids("members")
	if err := f.check(&org); err != nil {
		return err
	}
	if !f.valid() {
		return h.organizationFormPage(c, http.StatusUnprocessableEntity, org, memberIDs, false, f.errs, "")
	}

	requested := org.ID
	org.Members = heroRefs(memberIDs)
	if err := h.Store.Organizations.Create(c.Request().Context(), &org); err != nil {
		status, msg, ok := storeFailure(err, "organization")
		if !ok {
			return err
		}
		org.ID = requested
		return h.organizationFormPage(c, status, org, memberIDs, false, nil, msg)
	}
	return redirect(c, "/organization")
}

// EditOrganizationForm handles GET /organization/:id/edit.
func (h *Handler) EditOrganizationForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	org, err := h.Store.Organizations.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Organization")
	}
	return h.organizationFormPage(c, http.StatusOK, *org, org.MemberIDs(), true, nil, "")
}

// EditOrganization handles POST /organization/:id/edit.  The member list
// is replaced by the submitted selection.
func (h *Handler) EditOrganization(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := newForm(c)
	org := readOrganization(f)
	org.ID = id
	memberIDs := f.ids("members")
	if err := f.check(&org); err != nil {
		return err
	}
	if !f.valid() {
		return h.organizationFormPage(c, http.StatusUnprocessableEntity, org, memberIDs, true, f.errs, "")
	}

	org.Members = heroRefs(memberIDs)
	ok, err := h.Store.Organizations.Update(c.Request().Context(), &org)
	if err != nil {
		status, msg, known := storeFailure(err, "organization")
		if !known {
			return err
		}
		return h.organizationFormPage(c, status, org, memberIDs, true, nil, msg)
	}
	if !ok {
		return notFound("Organization")
	}
	return redirect(c, fmt.Sprintf("/organization/%d", id))
}

// DeleteOrganizationForm handles GET /organization/:id/delete.
func (h *Handler) DeleteOrganizationForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	org, err := h.Store.Organizations.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Organization")
	}
	return page(c, http.StatusOK, "confirm_delete", "Delete "+org.Name, organizationSection, confirmDelete{
		Kind:   "organization",
		Name:   org.Name,
		Action: fmt.Sprintf("/organization/%d/delete", id),
		Cancel: fmt.Sprintf("/organization/%d", id),
	})
}

// DeleteOrganization handles POST /organization/:id/delete.
func (h *Handler) DeleteOrganization(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ok, err := h.Store.Organizations.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Organization")
	}
	return redirect(c, "/organization")
}

func readOrganization(f *form) model.Organization {
	return model.Organization{
		Name:          f.str("name"),
		Description:   f.str("description"),
		StreetAddress: f.str("street_address"),
		City:          f.str("city"),
		Country:       f.str("country"),
	}
}

func (h *Handler) organizationFormPage(c echo.Context, status int, org model.Organization, selected []int64,
	edit bool, errs model.FieldErrors, msg string) error {
	heroes, err := h.Store.Superheroes.List(c.Request().Context())
	if err != nil {
		return err
	}
	data := organizationForm{
		Org:         org,
		Superheroes: heroes,
		Selected:    selected,
		Action:      "/organization/add",
		Edit:        edit,
	}
	title := "Add organization"
	if edit {
		data.Action = fmt.Sprintf("/organization/%d/edit", org.ID)
		title = "Edit organization"
	}
	return formPage(c, status, "organization/form", title, organizationSection, errs, msg, data)
}

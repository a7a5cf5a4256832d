package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/superhero-sightings/internal/handler"
)

// crud is the set of handlers behind one entity prefix.
type crud struct {
	list, details         echo.HandlerFunc
	addForm, add          echo.HandlerFunc
	editForm, edit        echo.HandlerFunc
	deleteForm, deleteOne echo.HandlerFunc
}

// RegisterEntities mounts list, details, add, edit and delete pages for
// every entity.  Add, edit and delete each have a GET form and a POST.
func RegisterEntities(e *echo.Echo, h *handler.Handler) {
	mount(e, "/superhero", crud{
		h.ListSuperheroes, h.SuperheroDetails,
		h.AddSuperheroForm, h.AddSuperhero,
		h.EditSuperheroForm, h.EditSuperhero,
		h.DeleteSuperheroForm, h.DeleteSuperhero,
	})
	mount(e, "/superpower", crud{
		h.ListSuperpowers, h.SuperpowerDetails,
		h.AddSuperpowerForm, h.AddSuperpower,
		h.EditSuperpowerForm, h.EditSuperpower,
		h.DeleteSuperpowerForm, h.DeleteSuperpower,
	})
	mount(e, "/organization", crud{
		h.ListOrganizations, h.OrganizationDetails,
		h.AddOrganizationForm, h.AddOrganization,
		h.EditOrganizationForm, h.EditOrganization,
		h.DeleteOrganizationForm, h.DeleteOrganization,
	})
	mount(e, "/location", crud{
		h.ListLocations, h.LocationDetails,
		h.AddLocationForm, h.AddLocation,
		h.EditLocationForm, h.EditLocation,
		h.DeleteLocationForm, h.DeleteLocation,
	})
	mount(e, "/sighting", crud{
		h.ListSightings, h.SightingDetails,
		h.AddSightingForm, h.AddSighting,
		h.EditSightingForm, h.EditSighting,
		h.DeleteSightingForm, h.DeleteSighting,
	})
}

func mount(e *echo.Echo, prefix string, r crud) {
	g := e.Group(prefix)
	g.GET("", r.list)
	// /add is a static segment, so echo matches it before /:id.
	g.GET("/add", r.addForm)
	g.POST("/add", r.add)
	g.GET("/:id", r.details)
	g.GET("/:id/edit", r.editForm)
	g.POST("/:id/edit", r.edit)
	g.GET("/:id/delete", r.deleteForm)
	g.POST("/:id/delete", r.deleteOne)
}

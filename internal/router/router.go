package router // package router defines how HTTP routes are registered for the site

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/handler"
	"github.com/iliyamo/superhero-sightings/internal/web"
)

// New builds the echo instance serving the site: HTML renderer, error
// pages, the given middleware in order, and every route.
func New(h *handler.Handler, log *zap.Logger, mw ...echo.MiddlewareFunc) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(mw...)

	RegisterRoutes(e, h, web.Static())
	RegisterEntities(e, h)
	return e, nil
}

// RegisterRoutes registers the operational endpoints, the home map and the
// embedded static assets.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, static fs.FS) {
	// Liveness probe for load balancers and monitoring systems.
	e.GET("/healthz", h.Health)
	// Prometheus scrape endpoint.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/", h.Home)
	e.GET("/home", h.Home)

	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))))
}

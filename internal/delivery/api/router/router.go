// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"crawl/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CrawlHandler *handler.CrawlHandler
	Gatherer     prometheus.Gatherer `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	crawlHandler *handler.CrawlHandler
	gatherer     prometheus.Gatherer
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		crawlHandler: params.CrawlHandler,
		gatherer:     params.Gatherer,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	e.POST("/crawl", r.crawlHandler.PlanCrawl)
}

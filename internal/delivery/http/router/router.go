// Package router contains routing setup for the HTTP delivery.
package router

import (
	"nosh/internal/delivery/http/middleware"
	"nosh/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DiscoveryHandler    *handler.DiscoveryHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
	ViewerMiddleware    *middleware.ViewerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	discoveryHandler    *handler.DiscoveryHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
	viewerMiddleware    *middleware.ViewerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		discoveryHandler:    params.DiscoveryHandler,
		requestIDMiddleware: params.RequestIDMiddleware,
		viewerMiddleware:    params.ViewerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Search endpoints work anonymously; an optional bearer token attaches
	// the viewer identity for future personalization.
	searchGroup := e.Group("/search")
	searchGroup.Use(r.requestIDMiddleware.Process)
	searchGroup.Use(r.viewerMiddleware.Attach)
	{
		searchGroup.GET("/nearby", r.discoveryHandler.SearchNearby)
		searchGroup.GET("/viewport", r.discoveryHandler.SearchViewport)
	}
}

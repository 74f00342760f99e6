// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/middleware"
)

// Router wires handlers, authentication and Chi middleware together.
type Router struct {
	handler       *Handler
	middleware    *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, authMw *auth.Middleware, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		middleware:    authMw,
		chiMiddleware: chiMw,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// requireRole adapts auth.Middleware.RequireRole for r.With.
func (router *Router) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return router.middleware.RequireRole(role, next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/top", router.handler.TopRecipes)
			r.Get("/search", router.handler.SearchRecipes)
			r.With(chiMiddleware(router.middleware.Optional)).Get("/{externalID}", router.handler.GetRecipe)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrites())
				r.Use(router.requireRole(auth.RoleUser))

				r.Post("/", router.handler.SubmitRecipe)
				r.Post("/{externalID}/ratings", router.handler.RateRecipe)
				r.Post("/{externalID}/comments", router.handler.CommentRecipe)
				r.Post("/{externalID}/favorite", router.handler.ToggleFavorite)
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(router.requireRole(auth.RoleUser))
			r.Get("/favorites", router.handler.MyFavorites)
			r.Get("/profile", router.handler.MyProfile)
		})

		r.Route("/moderation/recipes", func(r chi.Router) {
			r.Use(router.requireRole(auth.RoleAdmin))
			r.Get("/", router.handler.PendingRecipes)
			r.Post("/{id}/approve", router.handler.ApproveRecipe)
			r.Delete("/{id}", router.handler.RejectRecipe)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/wordsmith-api/internal/api"
	apiMiddleware "github.com/phrazzld/wordsmith-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.NewTokenGuard(app.tokenCodec, app.userStore, app.logger).Authenticate)

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	postHandler := api.NewPostHandler(app.postService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	commentHandler := api.NewCommentHandler(app.commentService, app.logger)

	r.Get("/health", api.HealthHandler)
	r.Handle("/metrics", app.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/info", api.InfoHandler(app.config.API))

		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/authenticate", authHandler.Authenticate)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireAuthenticated)
			r.Route("/users", userHandler.Routes)
			r.Route("/posts", postHandler.Routes)
			r.Route("/categories", categoryHandler.Routes)
			r.Route("/comments", commentHandler.Routes)
		})
	})

	return r
}

// Package fitplanhub собирает клиент FitPlanHub: контроллер, хранилище сессии
// и локальный фронтенд.
package fitplanhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/fitplanhub/internal/controller"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/pages"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plans"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/profile"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/state"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/trainers"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

// RegisterRoutes регистрирует все маршруты локального фронтенда.
func RegisterRoutes(r chi.Router, logger *slog.Logger, ctrl *controller.Controller, renderer *view.Renderer,
	limiter *rate.Limiter, registry *prometheus.Registry) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	screen := state.New(logger, ctrl, renderer)
	r.Get("/", screen.Index)
	r.Get("/state", screen.State)

	// Действия пользователя
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

		r.Post("/pages/{page}", pages.New(logger, ctrl).ServeHTTP)

		authHandler := auth.New(logger, ctrl)
		r.Post("/auth/prompt/close", authHandler.ClosePrompt)
		r.Post("/auth/prompt/{mode}", authHandler.OpenPrompt)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/logout", authHandler.Logout)

		profileHandler := profile.New(logger, ctrl)
		r.Post("/profile/prompt", profileHandler.OpenPrompt)
		r.Post("/profile", profileHandler.Update)

		trainersHandler := trainers.New(logger, ctrl)
		r.Post("/trainers/{id}/follow", trainersHandler.Follow)
		r.Post("/trainers/{id}/unfollow", trainersHandler.Unfollow)

		plansHandler := plans.New(logger, ctrl)
		r.Post("/plans/search", plansHandler.Search)
		r.Post("/plans/sort", plansHandler.Sort)
		r.Post("/plans/{id}/subscribe", plansHandler.Subscribe)
		r.Post("/plans/{id}/unsubscribe", plansHandler.Unsubscribe)
		r.Post("/plans/{id}/view", plansHandler.View)
		r.Post("/plans/{id}/edit", plansHandler.Edit)
		r.Post("/plans/{id}/delete", plansHandler.Delete)
		r.Post("/trainer/plans/prompt", plansHandler.OpenCreatePrompt)
		r.Post("/trainer/plans", plansHandler.Create)
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

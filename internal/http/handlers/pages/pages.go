// Package pages обрабатывает переходы между страницами.
package pages

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fitplanhub/internal/controller"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

// Service описывает навигацию контроллера.
type Service interface {
	Navigate(ctx context.Context, page view.PageID) error
}

// Handler обрабатывает POST /pages/{page}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// неизвестная страница открывается как главная, это решает контроллер
	page := view.PageID(chi.URLParam(r, "page"))
	err := h.service.Navigate(r.Context(), page)
	switch {
	case err == nil:
		log.Info("navigated", slog.String("page", string(page)))
	case errors.Is(err, controller.ErrUnauthenticated), errors.Is(err, controller.ErrForbidden):
		log.Info("navigation rejected", slog.String("page", string(page)), sl.Err(err))
	default:
		log.Error("navigation failed", slog.String("page", string(page)), sl.Err(err))
	}
	response.BackToScreen(w, r)
}

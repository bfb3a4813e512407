// Package trainers обрабатывает подписку на тренеров.
package trainers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/request"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

// Service описывает операции контроллера над тренерами.
type Service interface {
	FollowTrainer(ctx context.Context, trainerID int) error
	UnfollowTrainer(ctx context.Context, trainerID int) error
}

// Handler обработчики /trainers/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Follow POST /trainers/{id}/follow
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trainers.Follow"
	h.handle(w, r, op, h.service.FollowTrainer)
}

// Unfollow POST /trainers/{id}/unfollow
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trainers.Unfollow"
	h.handle(w, r, op, h.service.UnfollowTrainer)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, op string, action func(context.Context, int) error) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.ID(r)
	if err != nil {
		log.Error("invalid trainer id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid trainer id"))
		return
	}
	if err := action(r.Context(), id); err != nil {
		log.Info("trainer action not completed", slog.Int("trainer_id", id), sl.Err(err))
	}
	response.BackToScreen(w, r)
}

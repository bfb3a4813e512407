// Package profile обрабатывает редактирование профиля.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/request"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Service описывает операции профиля контроллера.
type Service interface {
	OpenEditProfile() error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
}

// Handler обработчики /profile.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// OpenPrompt POST /profile/prompt
func (h *Handler) OpenPrompt(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.OpenPrompt"
	if err := h.service.OpenEditProfile(); err != nil {
		h.log.Info("edit profile prompt rejected",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
	}
	response.BackToScreen(w, r)
}

// Update POST /profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.Update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := request.Form(r); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}
	upd := models.ProfileUpdate{
		Bio:   r.PostForm.Get("bio"),
		Email: r.PostForm.Get("email"),
	}
	if err := h.service.UpdateProfile(r.Context(), upd); err != nil {
		log.Info("profile not updated", sl.Err(err))
	} else {
		log.Info("profile updated")
	}
	response.BackToScreen(w, r)
}

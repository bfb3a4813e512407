// Package auth обрабатывает формы входа, регистрации и выхода.
//
// Результат действия пользователь видит в уведомлении на экране, поэтому
// обработчики всегда возвращают редирект на экран. Ответ 400 только для
// запросов, которые не могла отправить форма.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/request"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Service описывает операции сессии контроллера.
type Service interface {
	OpenAuthPrompt(mode models.AuthMode)
	ClosePrompt()
	Authenticate(ctx context.Context, mode models.AuthMode, creds models.Credentials) error
	Logout(ctx context.Context)
}

// Handler обработчики /auth.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// OpenPrompt POST /auth/prompt/{mode}
func (h *Handler) OpenPrompt(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.OpenPrompt"
	log := h.logger(r, op)

	mode := models.AuthMode(chi.URLParam(r, "mode"))
	if mode != models.AuthLogin && mode != models.AuthRegister {
		log.Error("unknown auth mode", slog.String("mode", string(mode)))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown auth mode"))
		return
	}
	h.service.OpenAuthPrompt(mode)
	response.BackToScreen(w, r)
}

// ClosePrompt POST /auth/prompt/close, закрывает любое открытое окно.
func (h *Handler) ClosePrompt(w http.ResponseWriter, r *http.Request) {
	h.service.ClosePrompt()
	response.BackToScreen(w, r)
}

// Login POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Login"
	h.authenticate(w, r, op, models.AuthLogin)
}

// Register POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Register"
	h.authenticate(w, r, op, models.AuthRegister)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, op string, mode models.AuthMode) {
	log := h.logger(r, op)

	if err := request.Form(r); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}
	creds := models.Credentials{
		Username:             r.PostForm.Get("username"),
		Email:                r.PostForm.Get("email"),
		Password:             r.PostForm.Get("password"),
		PasswordConfirmation: r.PostForm.Get("password_confirm"),
		Role:                 models.Role(r.PostForm.Get("role")),
	}

	if err := h.service.Authenticate(r.Context(), mode, creds); err != nil {
		log.Info("authentication not completed", sl.Err(err))
	} else {
		log.Info("authenticated", slog.String("username", creds.Username))
	}
	response.BackToScreen(w, r)
}

// Logout POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Logout"
	h.service.Logout(r.Context())
	h.logger(r, op).Info("logged out")
	response.BackToScreen(w, r)
}

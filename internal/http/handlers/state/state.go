// Package state отдаёт текущий экран: HTML-страницу и JSON-снимок.
package state

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

// Service источник снимка экрана.
type Service interface {
	Snapshot() view.Snapshot
}

// Renderer рисует снимок в HTML.
type Renderer interface {
	Render(w io.Writer, snap view.Snapshot) error
}

// Handler обработчики чтения экрана.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer Renderer
}

// New создаёт Handler.
func New(log *slog.Logger, service Service, renderer Renderer) *Handler {
	return &Handler{log: log, service: service, renderer: renderer}
}

// Index GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.state.Index"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Render(w, h.service.Snapshot()); err != nil {
		log.Error("failed to render page", sl.Err(err))
	}
}

// State GET /state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(h.service.Snapshot()))
}

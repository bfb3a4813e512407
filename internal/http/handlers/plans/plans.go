// Package plans обрабатывает действия с планами тренировок: подписку,
// поиск, заглушки просмотра и редактирования, создание плана тренером.
package plans

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/request"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Service описывает операции контроллера над планами.
type Service interface {
	SubscribeToPlan(ctx context.Context, planID int) error
	UnsubscribeFromPlan(ctx context.Context, planID int) error
	ViewPlan(planID int)
	EditPlan(planID int)
	DeletePlan(planID int, confirmed bool)
	SearchPlans(term string)
	SortPlans()
	OpenCreatePlan() error
	CreatePlan(ctx context.Context, draft models.PlanDraft) error
}

// Handler обработчики /plans и /trainer/plans.
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

// planID читает {id}, при ошибке сам отвечает 400.
func (h *Handler) planID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int, bool) {
	id, err := request.ID(r)
	if err != nil {
		log.Error("invalid plan id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid plan id"))
		return 0, false
	}
	return id, true
}

func badForm(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error("failed to parse form", sl.Err(err))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error("invalid form"))
}

// Subscribe POST /plans/{id}/subscribe
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Subscribe"
	log := h.logger(r, op)
	id, ok := h.planID(w, r, log)
	if !ok {
		return
	}
	if err := h.service.SubscribeToPlan(r.Context(), id); err != nil {
		log.Info("subscription not completed", slog.Int("plan_id", id), sl.Err(err))
	}
	response.BackToScreen(w, r)
}

// Unsubscribe POST /plans/{id}/unsubscribe
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Unsubscribe"
	log := h.logger(r, op)
	id, ok := h.planID(w, r, log)
	if !ok {
		return
	}
	if err := h.service.UnsubscribeFromPlan(r.Context(), id); err != nil {
		log.Info("unsubscribe not completed", slog.Int("plan_id", id), sl.Err(err))
	}
	response.BackToScreen(w, r)
}

// View POST /plans/{id}/view
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.View"
	if id, ok := h.planID(w, r, h.logger(r, op)); ok {
		h.service.ViewPlan(id)
		response.BackToScreen(w, r)
	}
}

// Edit POST /plans/{id}/edit
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Edit"
	if id, ok := h.planID(w, r, h.logger(r, op)); ok {
		h.service.EditPlan(id)
		response.BackToScreen(w, r)
	}
}

// Delete POST /plans/{id}/delete. Без поля confirm=yes ничего не удаляется.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Delete"
	log := h.logger(r, op)
	id, ok := h.planID(w, r, log)
	if !ok {
		return
	}
	if err := request.Form(r); err != nil {
		badForm(w, r, log, err)
		return
	}
	h.service.DeletePlan(id, r.PostForm.Get("confirm") == "yes")
	response.BackToScreen(w, r)
}

// Search POST /plans/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Search"
	log := h.logger(r, op)
	if err := request.Form(r); err != nil {
		badForm(w, r, log, err)
		return
	}
	h.service.SearchPlans(r.PostForm.Get("term"))
	response.BackToScreen(w, r)
}

// Sort POST /plans/sort
func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	h.service.SortPlans()
	response.BackToScreen(w, r)
}

// OpenCreatePrompt POST /trainer/plans/prompt
func (h *Handler) OpenCreatePrompt(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.OpenCreatePrompt"
	if err := h.service.OpenCreatePlan(); err != nil {
		h.logger(r, op).Info("create plan prompt rejected", sl.Err(err))
	}
	response.BackToScreen(w, r)
}

// Create POST /trainer/plans
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Create"
	log := h.logger(r, op)
	if err := request.Form(r); err != nil {
		badForm(w, r, log, err)
		return
	}

	draft := models.PlanDraft{
		Title:              r.PostForm.Get("title"),
		Description:        r.PostForm.Get("description"),
		PreviewDescription: r.PostForm.Get("preview_description"),
		Price:              r.PostForm.Get("price"),
	}
	// пустое или нечисловое значение остаётся нулём и отсекается валидацией
	if days, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("duration_days"))); err == nil {
		draft.DurationDays = days
	}

	if err := h.service.CreatePlan(r.Context(), draft); err != nil {
		log.Info("plan not created", sl.Err(err))
	} else {
		log.Info("plan created", slog.String("title", draft.Title))
	}
	response.BackToScreen(w, r)
}

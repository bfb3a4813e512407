package controller

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

// OpenAuthPrompt открывает окно входа или регистрации, заменяя открытое.
func (c *Controller) OpenAuthPrompt(mode models.AuthMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.OpenPrompt(view.AuthPrompt(mode))
}

// OpenEditProfile открывает редактирование профиля с текущими данными.
func (c *Controller) OpenEditProfile() error {
	const op = "controller.OpenEditProfile"
	s, err := c.requireSession(op)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.OpenPrompt(view.EditProfilePrompt(s.User))
	return nil
}

// OpenCreatePlan открывает форму нового плана, только для тренера.
func (c *Controller) OpenCreatePlan() error {
	const op = "controller.OpenCreatePlan"
	if _, err := c.requireTrainer(op); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.OpenPrompt(view.CreatePlanPrompt())
	return nil
}

// ClosePrompt закрывает открытое окно.
func (c *Controller) ClosePrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.ClosePrompt(view.PromptNone)
}

// SearchPlans фильтрует сетку планов по подстроке без повторного запроса.
// Вне страницы планов ничего не делает.
func (c *Controller) SearchPlans(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r := c.screen.Page().Region(view.RegionPlansGrid); r != nil {
		r.Filter = strings.TrimSpace(term)
	}
}

// EditPlan заглушка редактирования плана.
func (c *Controller) EditPlan(planID int) {
	c.stub("edit plan", msgEditPlanSoon(planID))
}

// DeletePlan заглушка удаления. Без подтверждения ничего не происходит.
func (c *Controller) DeletePlan(planID int, confirmed bool) {
	if !confirmed {
		return
	}
	c.stub("delete plan", msgDeletePlanSoon(planID))
}

// ViewPlan заглушка просмотра плана.
func (c *Controller) ViewPlan(planID int) {
	c.stub("view plan", msgViewPlanSoon(planID))
}

// SortPlans заглушка сортировки.
func (c *Controller) SortPlans() {
	c.stub("sort plans", msgSortingSoon)
}

func (c *Controller) stub(action, msg string) {
	c.log.Debug(fmt.Sprintf("%s is not implemented", action), slog.String("message", msg))
	c.notifier.Show(notifyInfo, msg)
}

package controller

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/session"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

const homePlansLimit = 3

// job загрузка данных, выполняется без блокировки контроллера.
type job func(ctx context.Context)

// Navigate переходит на страницу page и загружает её данные.
//
// Страницы feed, profile и subscriptions без сессии не открываются: вместо
// перехода показывается окно входа. Панель тренера для всех, кроме тренера,
// заканчивается уведомлением об ошибке и переходом на главную.
// Неизвестная страница открывается как главная.
func (c *Controller) Navigate(ctx context.Context, page view.PageID) error {
	s := c.sessions.Current()

	c.mu.Lock()
	jobs, err := c.navigateLocked(page, s)
	c.mu.Unlock()

	c.run(ctx, jobs)
	return err
}

// navigateLocked проверяет доступ, ставит страницу на экран и выдаёт
// загрузки для её областей. Вызывается под c.mu.
func (c *Controller) navigateLocked(page view.PageID, s session.Session) ([]job, error) {
	if _, ok := view.ParsePage(string(page)); !ok {
		page = view.PageHome
	}

	if page.RequiresTrainer() && !s.IsTrainer() {
		c.observeNavigation(page, "forbidden")
		c.notifier.Show(notifyError, msgDashboardTrainersOnly)
		c.install(view.PageHome, s)
		return c.loads(s), ErrForbidden
	}
	if page.RequiresSession() && !s.Authenticated() {
		c.observeNavigation(page, "login_required")
		c.screen.OpenPrompt(view.AuthPrompt(models.AuthLogin))
		return nil, ErrUnauthenticated
	}

	c.observeNavigation(page, "ok")
	c.install(page, s)
	return c.loads(s), nil
}

func (c *Controller) install(page view.PageID, s session.Session) {
	c.screen.Install(view.Build(page, s.User))
	c.log.Debug("page installed", slog.String("page", string(page)))
}

// loads запускает загрузки для областей текущей страницы: области сразу
// переходят в состояние загрузки, а билеты уходят в задания.
func (c *Controller) loads(s session.Session) []job {
	token := s.Token

	switch c.screen.Current() {
	case view.PageHome:
		return c.single(view.RegionHomePlans, "home plans", func(ctx context.Context) (func(*view.Region), error) {
			plans, err := c.api.ListPlans(ctx, "")
			if err != nil {
				return nil, err
			}
			return func(r *view.Region) {
				if len(plans) > homePlansLimit {
					plans = plans[:homePlansLimit]
				}
				r.SetPlans(plans)
				c.featured = append([]models.Plan(nil), plans...)
				c.hasFeatured = true
			}, nil
		})
	case view.PagePlans:
		return c.single(view.RegionPlansGrid, "plans", func(ctx context.Context) (func(*view.Region), error) {
			plans, err := c.api.ListPlans(ctx, token)
			if err != nil {
				return nil, err
			}
			return func(r *view.Region) { r.SetPlans(plans) }, nil
		})
	case view.PageFeed:
		return c.single(view.RegionFeed, "feed", func(ctx context.Context) (func(*view.Region), error) {
			plans, err := c.api.Feed(ctx, token)
			if err != nil {
				return nil, err
			}
			return func(r *view.Region) { r.SetPlans(plans) }, nil
		})
	case view.PageSubscriptions:
		return c.single(view.RegionSubscriptions, "subscriptions", func(ctx context.Context) (func(*view.Region), error) {
			subs, err := c.api.Subscriptions(ctx, token)
			if err != nil {
				return nil, err
			}
			return func(r *view.Region) { r.SetSubscriptions(subs) }, nil
		})
	case view.PageTrainerDashboard:
		return c.dashboard(token)
	}
	return nil
}

// single задание для одной области.
func (c *Controller) single(id view.RegionID, name string, fetch func(ctx context.Context) (func(*view.Region), error)) []job {
	ticket, ok := c.screen.Begin(id)
	if !ok {
		return nil
	}
	return []job{func(ctx context.Context) {
		apply, err := fetch(ctx)
		if err != nil {
			c.log.Warn("failed to load "+name, slog.String("region", string(id)), sl.Err(err))
			c.patch(ticket, (*view.Region).Fail)
			return
		}
		c.patch(ticket, apply)
	}}
}

// dashboard сначала статистика, затем планы тренера. Ошибка статистики
// помечает обе области, планы тогда не запрашиваются.
func (c *Controller) dashboard(token string) []job {
	statsTicket, ok := c.screen.Begin(view.RegionTrainerStats)
	if !ok {
		return nil
	}
	plansTicket, ok := c.screen.Begin(view.RegionTrainerPlans)
	if !ok {
		return nil
	}
	return []job{func(ctx context.Context) {
		log := c.log.With(slog.String("page", string(view.PageTrainerDashboard)))

		stats, err := c.api.TrainerStats(ctx, token)
		if err != nil {
			log.Warn("failed to load trainer stats", sl.Err(err))
			c.patch(statsTicket, (*view.Region).Fail)
			c.patch(plansTicket, (*view.Region).Fail)
			return
		}
		c.patch(statsTicket, func(r *view.Region) { r.SetStats(*stats) })

		plans, err := c.api.TrainerPlans(ctx, token)
		if err != nil {
			log.Warn("failed to load trainer plans", sl.Err(err))
			c.patch(plansTicket, (*view.Region).Fail)
			return
		}
		c.patch(plansTicket, func(r *view.Region) { r.SetPlans(plans) })
	}}
}

// patch применяет результат загрузки, если он всё ещё актуален.
func (c *Controller) patch(t view.Ticket, fn func(*view.Region)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.screen.Patch(t, fn) {
		c.log.Debug("load result discarded", slog.String("region", string(t.Region)), slog.Uint64("seq", t.Seq))
	}
}

// run выполняет задания. Начатый запрос не отменяется, даже если
// вызывающий уже ушёл.
func (c *Controller) run(ctx context.Context, jobs []job) {
	if len(jobs) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, j := range jobs {
		j(ctx)
	}
}

// reloadIf перезагружает текущую страницу, если она одна из pages.
func (c *Controller) reloadIf(ctx context.Context, pages ...view.PageID) {
	current := c.CurrentPage()
	for _, p := range pages {
		if p == current {
			_ = c.Navigate(ctx, current)
			return
		}
	}
}

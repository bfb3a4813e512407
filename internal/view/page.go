// Package view описывает экраны клиента в виде структур: страницы, области
// с данными, модальные окна и навигацию. Пакет ничего не знает о сети,
// им пользуются контроллер (заполняет) и фронтенд (рисует).
package view

import (
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// PageID идентификатор страницы.
type PageID string

const (
	PageHome             PageID = "home"
	PageFeed             PageID = "feed"
	PagePlans            PageID = "plans"
	PageProfile          PageID = "profile"
	PageSubscriptions    PageID = "subscriptions"
	PageTrainerDashboard PageID = "trainer-dashboard"
)

// Pages все известные страницы в порядке меню.
var Pages = []PageID{PageHome, PageFeed, PagePlans, PageProfile, PageSubscriptions, PageTrainerDashboard}

// ParsePage возвращает страницу по строке. Неизвестное значение даёт home и false.
func ParsePage(s string) (PageID, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}
	return PageHome, false
}

// RequiresSession страница доступна только после входа.
func (p PageID) RequiresSession() bool {
	switch p {
	case PageFeed, PageProfile, PageSubscriptions, PageTrainerDashboard:
		return true
	}
	return false
}

// RequiresTrainer страница доступна только тренеру.
func (p PageID) RequiresTrainer() bool {
	return p == PageTrainerDashboard
}

// RegionID идентификатор области, которую заполняет загрузка данных.
type RegionID string

const (
	RegionHomePlans     RegionID = "home-plans"
	RegionPlansGrid     RegionID = "plans-grid"
	RegionFeed          RegionID = "feed-content"
	RegionSubscriptions RegionID = "subscriptions-content"
	RegionTrainerStats  RegionID = "trainer-stats"
	RegionTrainerPlans  RegionID = "trainer-plans"
)

// RegionState состояние области.
type RegionState string

const (
	// StateIdle область показана без данных и без загрузки.
	StateIdle    RegionState = "idle"
	StateLoading RegionState = "loading"
	StateReady   RegionState = "ready"
	StateEmpty   RegionState = "empty"
	StateFailed  RegionState = "failed"
)

// Region область страницы с собственным жизненным циклом загрузки.
type Region struct {
	ID      RegionID    `json:"id"`
	State   RegionState `json:"state"`
	Message string      `json:"message,omitempty"`

	Plans         []models.Plan         `json:"plans,omitempty"`
	Subscriptions []models.Subscription `json:"subscriptions,omitempty"`
	Stats         *models.TrainerStats  `json:"stats,omitempty"`

	// Filter строка поиска по планам, скрывает несовпадающие без перезапроса.
	Filter string `json:"filter,omitempty"`

	loadingMessage string
	emptyMessage   string
	failedMessage  string
	seq            uint64
}

func newRegion(id RegionID, loading, empty, failed string) *Region {
	return &Region{
		ID:             id,
		State:          StateLoading,
		Message:        loading,
		loadingMessage: loading,
		emptyMessage:   empty,
		failedMessage:  failed,
	}
}

// SetPlans заполняет область планами, пустой список переводит её в StateEmpty.
func (r *Region) SetPlans(plans []models.Plan) {
	r.Plans = plans
	if len(plans) == 0 {
		r.State, r.Message = StateEmpty, r.emptyMessage
		return
	}
	r.State, r.Message = StateReady, ""
}

// SetSubscriptions заполняет область подписками.
func (r *Region) SetSubscriptions(subs []models.Subscription) {
	r.Subscriptions = subs
	if len(subs) == 0 {
		r.State, r.Message = StateEmpty, r.emptyMessage
		return
	}
	r.State, r.Message = StateReady, ""
}

// SetStats заполняет область статистики тренера.
func (r *Region) SetStats(stats models.TrainerStats) {
	r.Stats = &stats
	r.State, r.Message = StateReady, ""
}

// Fail показывает в области сообщение об ошибке загрузки.
func (r *Region) Fail() {
	r.State, r.Message = StateFailed, r.failedMessage
}

// Idle снимает индикатор загрузки, не трогая данные.
func (r *Region) Idle() {
	r.State, r.Message = StateIdle, ""
}

// VisiblePlans планы, прошедшие фильтр поиска.
func (r *Region) VisiblePlans() []models.Plan {
	if r.Filter == "" {
		return r.Plans
	}
	out := make([]models.Plan, 0, len(r.Plans))
	for _, p := range r.Plans {
		if p.Matches(r.Filter) {
			out = append(out, p)
		}
	}
	return out
}

// Page содержимое страницы. Регионы идут в порядке отображения.
type Page struct {
	ID       PageID    `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Regions  []*Region `json:"regions"`

	// Profile данные профиля, только для PageProfile.
	Profile *models.User `json:"profile,omitempty"`
	// CanCreatePlan показывать кнопку создания плана.
	CanCreatePlan bool `json:"can_create_plan,omitempty"`
	// ShowJoin показывать кнопку регистрации на главной.
	ShowJoin bool `json:"show_join,omitempty"`
}

// Region ищет область страницы, nil если её нет.
func (p *Page) Region(id RegionID) *Region {
	if p == nil {
		return nil
	}
	for _, r := range p.Regions {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Build строит страницу с областями в состоянии загрузки.
// user может быть nil. Неизвестная страница строится как home.
func Build(id PageID, user *models.User) *Page {
	switch id {
	case PageFeed:
		return &Page{
			ID:       PageFeed,
			Title:    "Your Fitness Feed",
			Subtitle: "Latest plans from trainers you follow",
			Regions: []*Region{
				newRegion(RegionFeed, "Loading your feed...", "Your feed is empty", "Failed to load feed."),
			},
		}
	case PagePlans:
		return &Page{
			ID:            PagePlans,
			Title:         "Browse Fitness Plans",
			CanCreatePlan: user.IsTrainer(),
			Regions: []*Region{
				newRegion(RegionPlansGrid, "Loading plans...", "No plans found", "Failed to load plans."),
			},
		}
	case PageProfile:
		var profile *models.User
		if user != nil {
			u := *user
			profile = &u
		}
		return &Page{ID: PageProfile, Title: "Profile", Profile: profile}
	case PageSubscriptions:
		return &Page{
			ID:    PageSubscriptions,
			Title: "My Subscriptions",
			Regions: []*Region{
				newRegion(RegionSubscriptions, "Loading subscriptions...", "No subscriptions yet", "Failed to load subscriptions."),
			},
		}
	case PageTrainerDashboard:
		return &Page{
			ID:            PageTrainerDashboard,
			Title:         "Trainer Dashboard",
			CanCreatePlan: true,
			Regions: []*Region{
				newRegion(RegionTrainerStats, "Loading statistics...", "", "Failed to load dashboard."),
				newRegion(RegionTrainerPlans, "Loading your plans...", "No plans created yet", "Failed to load dashboard."),
			},
		}
	default:
		return &Page{
			ID:       PageHome,
			Title:    "Transform Your Fitness Journey",
			Subtitle: "Popular Fitness Plans",
			ShowJoin: user == nil,
			Regions: []*Region{
				newRegion(RegionHomePlans, "Loading plans...", "No plans available yet.", "Failed to load plans. Please try again later."),
			},
		}
	}
}

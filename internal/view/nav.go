package view

import (
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/notify"
)

// NavLink пункт меню.
type NavLink struct {
	Page   PageID `json:"page"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Nav панель навигации, зависит только от сессии и текущей страницы.
type Nav struct {
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username,omitempty"`
	IsTrainer     bool      `json:"is_trainer"`
	Links         []NavLink `json:"links"`
}

var linkLabels = map[PageID]string{
	PageHome:             "Home",
	PageFeed:             "Feed",
	PagePlans:            "Plans",
	PageProfile:          "Profile",
	PageSubscriptions:    "My Subscriptions",
	PageTrainerDashboard: "Dashboard",
}

// BuildNav строит меню. Гость видит только общедоступные страницы,
// панель тренера видна только тренеру.
func BuildNav(current PageID, user *models.User) Nav {
	nav := Nav{Authenticated: user != nil}
	if user != nil {
		nav.Username = user.Username
		nav.IsTrainer = user.IsTrainer()
	}
	for _, p := range Pages {
		if p.RequiresSession() && user == nil {
			continue
		}
		if p.RequiresTrainer() && !user.IsTrainer() {
			continue
		}
		nav.Links = append(nav.Links, NavLink{Page: p, Label: linkLabels[p], Active: p == current})
	}
	return nav
}

// Snapshot всё, что нужно для отрисовки экрана.
type Snapshot struct {
	Page         PageID               `json:"page"`
	Nav          Nav                  `json:"nav"`
	Content      *Page                `json:"content"`
	Prompt       Prompt               `json:"prompt"`
	Notification *notify.Notification `json:"notification,omitempty"`
	TakenAt      time.Time            `json:"taken_at"`
}

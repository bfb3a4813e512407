package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Renderer рисует Snapshot в HTML.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer разбирает шаблон страницы.
func NewRenderer() (*Renderer, error) {
	const op = "view.NewRenderer"
	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"truncate": truncate,
	}).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render записывает страницу в w.
func (r *Renderer) Render(w io.Writer, snap Snapshot) error {
	const op = "view.Render"
	if err := r.tmpl.Execute(w, snap); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func truncate(n int, s string) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>FitPlanHub</title>
</head>
<body>
<nav class="navbar">
  <span class="brand">FitPlanHub</span>
  {{range .Nav.Links}}
  <form method="post" action="/pages/{{.Page}}" class="nav-link{{if .Active}} active{{end}}"><button>{{.Label}}</button></form>
  {{end}}
  {{if .Nav.Authenticated}}
  <span class="user">{{.Nav.Username}}{{if .Nav.IsTrainer}} <span class="badge">Trainer</span>{{end}}</span>
  <form method="post" action="/auth/logout"><button>Logout</button></form>
  {{else}}
  <form method="post" action="/auth/prompt/login"><button>Login</button></form>
  <form method="post" action="/auth/prompt/register"><button>Sign Up</button></form>
  {{end}}
</nav>

{{with .Notification}}
<div class="alert alert-{{.Severity}}" role="alert">{{.Message}}</div>
{{end}}

<main id="main-content">
{{with .Content}}
  <h2>{{.Title}}</h2>
  {{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
  {{if .ShowJoin}}<form method="post" action="/auth/prompt/register"><button>Start Your Journey</button></form>{{end}}
  {{if .CanCreatePlan}}<form method="post" action="/trainer/plans/prompt"><button>Create Plan</button></form>{{end}}

  {{with .Profile}}
  <section id="profile">
    <h3>{{.Username}}</h3>
    <p>{{.Email}}</p>
    <p>Role: {{.Role}}</p>
    <p>Bio: {{.BioText}}</p>
    <form method="post" action="/profile/prompt"><button>Edit Profile</button></form>
  </section>
  {{end}}

  {{if eq .ID "plans"}}
  <form method="post" action="/plans/search">
    <input type="search" name="term" placeholder="Search plans..." />
    <button>Search</button>
  </form>
  <form method="post" action="/plans/sort"><button>Sort</button></form>
  {{end}}

  {{range .Regions}}
  <section id="{{.ID}}" class="region region-{{.State}}">
    {{if .Message}}<p class="text-muted">{{.Message}}</p>{{end}}
    {{with .Stats}}
    <div class="stats">
      <div><strong>{{.TotalPlans}}</strong> Total Plans</div>
      <div><strong>{{.TotalSubscribers}}</strong> Total Subscribers</div>
      <div><strong>${{.TotalEarnings}}</strong> Total Earnings</div>
      <div><strong>{{.TotalFollowers}}</strong> Followers</div>
      <div><strong>{{.RecentSubscribers}}</strong> New Subscribers (30 days)</div>
      {{if .PopularPlan.Title}}<div>Most popular: {{.PopularPlan.Title}} ({{.PopularPlan.Subscribers}})</div>{{end}}
    </div>
    {{end}}
    {{$region := .ID}}
    {{range .VisiblePlans}}
    <article class="plan">
      <h5>{{.Title}}</h5>
      {{with .TrainerName}}<small>by {{.}}</small>{{end}}
      <p>{{if .Description}}{{truncate 100 .Description}}{{else}}{{.PreviewDescription}}{{end}}</p>
      <p>${{.Price}} / {{.DurationDays}} days</p>
      {{if eq $region "trainer-plans"}}
      <form method="post" action="/plans/{{.ID}}/edit"><button>Edit</button></form>
      <form method="post" action="/plans/{{.ID}}/delete"><input type="hidden" name="confirm" value="yes" /><button>Delete</button></form>
      {{else if .IsSubscribed}}
      <span class="badge">Subscribed</span>
      <form method="post" action="/plans/{{.ID}}/view"><button>View</button></form>
      <form method="post" action="/plans/{{.ID}}/unsubscribe"><button>Unsubscribe</button></form>
      {{else}}
      <form method="post" action="/plans/{{.ID}}/subscribe"><button>Subscribe</button></form>
      {{end}}
      {{with .Trainer}}{{if and .ID (ne $region "trainer-plans")}}
      <form method="post" action="/trainers/{{.ID}}/follow"><button>Follow {{.Username}}</button></form>
      <form method="post" action="/trainers/{{.ID}}/unfollow"><button>Unfollow</button></form>
      {{end}}{{end}}
    </article>
    {{end}}
    {{range .Subscriptions}}
    <article class="subscription">
      <h5>{{.Plan.Title}}</h5>
      <p>{{truncate 100 .Plan.Description}}</p>
      <small>Purchased {{.PurchaseDate.Format "2006-01-02"}}{{if .IsActive}}, active{{end}}</small>
      <form method="post" action="/plans/{{.Plan.ID}}/view"><button>View Plan</button></form>
      <form method="post" action="/plans/{{.Plan.ID}}/unsubscribe"><button>Unsubscribe</button></form>
    </article>
    {{end}}
  </section>
  {{end}}
{{end}}
</main>

{{with .Prompt}}{{if .Open}}
<div class="modal" role="dialog">
  <h5 class="modal-title">{{.Title}}</h5>
  {{if eq .Kind "login"}}
  <form method="post" action="/auth/login">
    <input name="username" placeholder="Username" required />
    <input name="password" type="password" placeholder="Password" required />
    <button>Login</button>
  </form>
  <form method="post" action="/auth/prompt/register"><small>Don't have an account?</small> <button>Sign up</button></form>
  {{else if eq .Kind "register"}}
  <form method="post" action="/auth/register">
    <input name="username" placeholder="Username" required />
    <input name="email" type="email" placeholder="Email" required />
    <input name="password" type="password" placeholder="Password" required />
    <input name="password_confirm" type="password" placeholder="Confirm Password" required />
    <select name="role"><option value="user">User</option><option value="trainer">Trainer</option></select>
    <button>Create Account</button>
  </form>
  <form method="post" action="/auth/prompt/login"><small>Already have an account?</small> <button>Login</button></form>
  {{else if eq .Kind "edit-profile"}}
  <form method="post" action="/profile">
    <input name="email" type="email" value="{{.Profile.Email}}" required />
    <textarea name="bio">{{.Profile.BioText}}</textarea>
    <button>Save Changes</button>
  </form>
  {{else if eq .Kind "create-plan"}}
  <form method="post" action="/trainer/plans">
    <input name="title" placeholder="Plan Title" required />
    <textarea name="description" placeholder="Full Description" required></textarea>
    <input name="preview_description" placeholder="Preview Description" required />
    <small>Shown to non-subscribers</small>
    <input name="price" type="number" step="0.01" min="0" placeholder="Price ($)" required />
    <input name="duration_days" type="number" min="1" placeholder="Duration (days)" required />
    <button>Create Plan</button>
  </form>
  {{end}}
  <form method="post" action="/auth/prompt/close"><button>Close</button></form>
</div>
{{end}}{{end}}
</body>
</html>`

package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/notify"
)

func trainer() *models.User {
	return &models.User{ID: 2, Username: "coach", Email: "c@x.io", Role: models.RoleTrainer}
}

func TestParsePage(t *testing.T) {
	p, ok := ParsePage("trainer-dashboard")
	assert.True(t, ok)
	assert.Equal(t, PageTrainerDashboard, p)

	p, ok = ParsePage("settings")
	assert.False(t, ok)
	assert.Equal(t, PageHome, p)
}

func TestBuild_Regions(t *testing.T) {
	tests := []struct {
		page    PageID
		regions []RegionID
	}{
		{PageHome, []RegionID{RegionHomePlans}},
		{PagePlans, []RegionID{RegionPlansGrid}},
		{PageFeed, []RegionID{RegionFeed}},
		{PageSubscriptions, []RegionID{RegionSubscriptions}},
		{PageTrainerDashboard, []RegionID{RegionTrainerStats, RegionTrainerPlans}},
		{PageProfile, nil},
		{"unknown", []RegionID{RegionHomePlans}},
	}

	for _, tt := range tests {
		t.Run(string(tt.page), func(t *testing.T) {
			p := Build(tt.page, trainer())
			var got []RegionID
			for _, r := range p.Regions {
				got = append(got, r.ID)
				assert.Equal(t, StateLoading, r.State)
			}
			assert.Equal(t, tt.regions, got)
		})
	}
}

func TestBuild_RoleDependentParts(t *testing.T) {
	assert.True(t, Build(PageHome, nil).ShowJoin)
	assert.False(t, Build(PageHome, trainer()).ShowJoin)
	assert.False(t, Build(PagePlans, nil).CanCreatePlan)
	assert.True(t, Build(PagePlans, trainer()).CanCreatePlan)

	u := trainer()
	p := Build(PageProfile, u)
	u.Email = "changed"
	assert.Equal(t, "c@x.io", p.Profile.Email)
}

func TestRegion_Fill(t *testing.T) {
	r := Build(PageFeed, nil).Region(RegionFeed)

	r.SetPlans(nil)
	assert.Equal(t, StateEmpty, r.State)
	assert.Equal(t, "Your feed is empty", r.Message)

	r.SetPlans([]models.Plan{{ID: 1}})
	assert.Equal(t, StateReady, r.State)
	assert.Empty(t, r.Message)

	r.Fail()
	assert.Equal(t, StateFailed, r.State)
	assert.Equal(t, "Failed to load feed.", r.Message)
}

func TestRegion_VisiblePlans(t *testing.T) {
	r := Build(PagePlans, nil).Region(RegionPlansGrid)
	r.SetPlans([]models.Plan{{ID: 1, Title: "Yoga"}, {ID: 2, Title: "Boxing"}})

	assert.Len(t, r.VisiblePlans(), 2)
	r.Filter = "yog"
	require.Len(t, r.VisiblePlans(), 1)
	assert.Equal(t, 1, r.VisiblePlans()[0].ID)
	assert.Len(t, r.Plans, 2)
}

func TestScreen_StaleTicketIsDiscarded(t *testing.T) {
	s := NewScreen()
	s.Install(Build(PagePlans, nil))

	first, ok := s.Begin(RegionPlansGrid)
	require.True(t, ok)
	second, ok := s.Begin(RegionPlansGrid)
	require.True(t, ok)

	assert.True(t, s.Patch(second, func(r *Region) { r.SetPlans([]models.Plan{{ID: 2}}) }))
	assert.False(t, s.Patch(first, func(r *Region) { r.SetPlans([]models.Plan{{ID: 1}}) }))

	assert.Equal(t, 2, s.Page().Region(RegionPlansGrid).Plans[0].ID)
}

func TestScreen_PatchAfterNavigationIsNoop(t *testing.T) {
	s := NewScreen()
	s.Install(Build(PageFeed, nil))
	ticket, ok := s.Begin(RegionFeed)
	require.True(t, ok)

	s.Install(Build(PageHome, nil))
	called := false
	assert.False(t, s.Patch(ticket, func(*Region) { called = true }))
	assert.False(t, called)

	// та же страница, построенная заново
	s.Install(Build(PageFeed, nil))
	assert.False(t, s.Patch(ticket, func(*Region) { called = true }))
	assert.False(t, called)

	_, ok = s.Begin(RegionTrainerStats)
	assert.False(t, ok)
}

func TestScreen_Prompt(t *testing.T) {
	s := NewScreen()
	assert.False(t, s.Prompt().Open())

	s.OpenPrompt(AuthPrompt(models.AuthRegister))
	assert.Equal(t, PromptRegister, s.Prompt().Kind)

	s.ClosePrompt(PromptLogin)
	assert.True(t, s.Prompt().Open())

	s.ClosePrompt(PromptRegister)
	assert.False(t, s.Prompt().Open())

	s.OpenPrompt(CreatePlanPrompt())
	s.ClosePrompt(PromptNone)
	assert.False(t, s.Prompt().Open())
}

func TestScreen_SnapshotIsDeep(t *testing.T) {
	s := NewScreen()
	assert.Nil(t, s.Snapshot())

	s.Install(Build(PageTrainerDashboard, trainer()))
	ticket, _ := s.Begin(RegionTrainerStats)
	s.Patch(ticket, func(r *Region) { r.SetStats(models.TrainerStats{TotalPlans: 3}) })

	snap := s.Snapshot()
	snap.Region(RegionTrainerStats).Stats.TotalPlans = 99
	snap.Regions[1].State = StateFailed

	assert.Equal(t, 3, s.Page().Region(RegionTrainerStats).Stats.TotalPlans)
	assert.Equal(t, StateLoading, s.Page().Region(RegionTrainerPlans).State)
}

func TestBuildNav(t *testing.T) {
	guest := BuildNav(PageHome, nil)
	assert.False(t, guest.Authenticated)
	require.Len(t, guest.Links, 2)
	assert.Equal(t, PageHome, guest.Links[0].Page)
	assert.True(t, guest.Links[0].Active)

	user := BuildNav(PageFeed, &models.User{Username: "alice", Role: models.RoleUser})
	assert.Equal(t, "alice", user.Username)
	assert.Len(t, user.Links, 5)

	coach := BuildNav(PageTrainerDashboard, trainer())
	assert.True(t, coach.IsTrainer)
	require.Len(t, coach.Links, 6)
	assert.True(t, coach.Links[5].Active)
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	s := NewScreen()
	s.Install(Build(PagePlans, nil))
	ticket, _ := s.Begin(RegionPlansGrid)
	s.Patch(ticket, func(r *Region) {
		r.SetPlans([]models.Plan{
			{ID: 1, Title: "Yoga <basics>", Price: "10.00", DurationDays: 7, Trainer: trainer()},
			{ID: 2, Title: "Boxing", Price: "5", DurationDays: 3, IsSubscribed: true},
		})
	})
	s.OpenPrompt(AuthPrompt(models.AuthLogin))

	var buf bytes.Buffer
	err = r.Render(&buf, Snapshot{
		Page:         PagePlans,
		Nav:          BuildNav(PagePlans, nil),
		Content:      s.Snapshot(),
		Prompt:       s.Prompt(),
		Notification: &notify.Notification{Severity: notify.Error, Message: "Subscription failed"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Browse Fitness Plans")
	assert.Contains(t, out, "Yoga &lt;basics&gt;")
	assert.Contains(t, out, "/plans/1/subscribe")
	assert.Contains(t, out, "/plans/2/unsubscribe")
	assert.Contains(t, out, "/trainers/2/follow")
	assert.Contains(t, out, "alert-error")
	assert.Contains(t, out, "Login to FitPlanHub")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate(5, "abc"))
	assert.Equal(t, "ab...", truncate(2, "abc"))
	assert.Equal(t, "пр...", truncate(2, "привет"))
}

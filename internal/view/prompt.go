package view

import "github.com/magabrotheeeer/fitplanhub/internal/models"

// PromptKind вид модального окна.
type PromptKind string

const (
	PromptNone        PromptKind = ""
	PromptLogin       PromptKind = "login"
	PromptRegister    PromptKind = "register"
	PromptEditProfile PromptKind = "edit-profile"
	PromptCreatePlan  PromptKind = "create-plan"
)

// Prompt модальное окно. Для редактирования профиля Profile хранит
// текущие значения полей.
type Prompt struct {
	Kind    PromptKind   `json:"kind,omitempty"`
	Title   string       `json:"title,omitempty"`
	Profile *models.User `json:"profile,omitempty"`
}

// Open окно открыто.
func (p Prompt) Open() bool {
	return p.Kind != PromptNone
}

// AuthPrompt окно входа или регистрации.
func AuthPrompt(mode models.AuthMode) Prompt {
	if mode == models.AuthRegister {
		return Prompt{Kind: PromptRegister, Title: "Join FitPlanHub"}
	}
	return Prompt{Kind: PromptLogin, Title: "Login to FitPlanHub"}
}

// EditProfilePrompt окно редактирования профиля с текущими данными.
func EditProfilePrompt(user *models.User) Prompt {
	u := *user
	return Prompt{Kind: PromptEditProfile, Title: "Edit Profile", Profile: &u}
}

// CreatePlanPrompt окно создания плана.
func CreatePlanPrompt() Prompt {
	return Prompt{Kind: PromptCreatePlan, Title: "Create New Fitness Plan"}
}

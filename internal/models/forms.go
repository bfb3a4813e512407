package models

// AuthMode режим аутентификации.
type AuthMode string

const (
	// AuthLogin вход по логину и паролю.
	AuthLogin AuthMode = "login"
	// AuthRegister регистрация новой учётной записи.
	AuthRegister AuthMode = "register"
)

// Credentials данные формы входа или регистрации.
// Для входа используются только Username и Password.
type Credentials struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 Role
}

// LoginRequest тело POST /api/accounts/login/.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest тело POST /api/accounts/register/.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=user trainer"`
}

// ProfileUpdate редактируемые поля профиля. Роль и имя через этот путь не меняются.
type ProfileUpdate struct {
	Bio   string `json:"bio"`
	Email string `json:"email" validate:"required,email"`
}

// PlanDraft форма создания плана тренером.
type PlanDraft struct {
	Title              string `json:"title" validate:"required,max=200"`
	Description        string `json:"description" validate:"required"`
	PreviewDescription string `json:"preview_description" validate:"required"`
	Price              string `json:"price" validate:"required,numeric"`
	DurationDays       int    `json:"duration_days" validate:"required,gt=0"`
}

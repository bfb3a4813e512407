// Package models содержит доменные структуры клиента FitPlanHub: пользователя,
// планы тренировок, подписки, статистику тренера и формы, которые клиент
// отправляет во внешний REST API.
package models

// Role роль пользователя маркетплейса.
type Role string

const (
	// RoleUser обычный участник, подписывается на планы.
	RoleUser Role = "user"
	// RoleTrainer тренер, публикует планы.
	RoleTrainer Role = "trainer"
)

// User представляет пользователя в том виде, в котором его отдаёт API.
// Клиент не меняет запись по частям: обновление профиля заменяет её целиком.
type User struct {
	ID             int     `json:"id,omitempty"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Role           Role    `json:"role"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// IsTrainer сообщает, является ли пользователь тренером.
func (u *User) IsTrainer() bool {
	return u != nil && u.Role == RoleTrainer
}

// BioText возвращает bio или пустую строку.
func (u *User) BioText() string {
	if u == nil || u.Bio == nil {
		return ""
	}
	return *u.Bio
}

// AuthResponse ответ login/register.
type AuthResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
	User    *User  `json:"user"`
}

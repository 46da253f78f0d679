// Package models содержит доменные модели платформы электронного обучения:
// пользователей, курсы, записи на курсы и события для уведомлений.
package models

import "time"

// Роли пользователей платформы.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя платформы.
//
// Username уникален глобально, Email уникален в пределах одной роли:
// один и тот же адрес может быть зарегистрирован и как студент, и как
// администратор, но не дважды в одной роли.
type User struct {
	Username         string    `json:"username"` // Имя пользователя (первичный ключ)
	Name             string    `json:"name"`     // Отображаемое имя
	Email            string    `json:"email"`    // Электронная почта
	PasswordHash     string    `json:"-"`        // Хэш пароля, никогда не сериализуется
	Role             string    `json:"role"`     // Роль: student или admin
	ProfileImage     []byte    `json:"-"`        // Аватар (опционально)
	ProfileImageMime string    `json:"profile_image_mime,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsValidRole проверяет, что роль входит в перечень допустимых.
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}

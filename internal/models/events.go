package models

// Типы событий, публикуемых в очередь уведомлений.
const (
	EventRegistration  = "registration"
	EventPasswordReset = "password_reset"
	EventEnrollment    = "enrollment"
)

// NotificationEvent — сообщение для сервиса отправки писем.
// Публикуется в RabbitMQ после фиксации соответствующей записи в базе.
type NotificationEvent struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CourseID    int    `json:"course_id,omitempty"`
	CourseTitle string `json:"course_title,omitempty"`
}

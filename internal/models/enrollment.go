package models

import "time"

// Enrollment фиксирует факт записи пользователя на курс.
//
// Пара (Username, CourseID) уникальна: пользователь не может держать
// две записи на один и тот же курс. Инвариант обеспечивается ограничением
// уникальности в базе данных, а не только проверкой в приложении.
type Enrollment struct {
	Username       string    `json:"username"`
	CourseID       int       `json:"course_id"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

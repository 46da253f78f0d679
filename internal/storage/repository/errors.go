package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Доменные ошибки хранилища. Сервисный слой сопоставляет их через errors.Is,
// не разбирая коды PostgreSQL самостоятельно.
var (
	// ErrUsernameTaken — имя пользователя уже занято (глобальная уникальность).
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken — почта уже зарегистрирована в этой роли.
	ErrEmailTaken = errors.New("email already exists for this role")
	// ErrAlreadyEnrolled — пользователь уже записан на курс.
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrCourseNotFound — курс не найден.
	ErrCourseNotFound = errors.New("course not found")
)

// Имена ограничений из migrations/000001_init.up.sql.
const (
	constraintUsersPK        = "users_pkey"
	constraintUsersEmailRole = "users_email_role_key"
	constraintEnrollmentPair = "enrollment_username_course_id_key"
	constraintEnrollmentFK   = "enrollment_course_id_fkey"
)

// translateConstraint сопоставляет нарушение ограничения PostgreSQL
// с доменной ошибкой. Попытка вставки — источник истины для инвариантов
// уникальности: предварительные проверки в приложении лишь ускоряют
// типовой путь, гонку разрешает только база.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraintUsersPK:
		return ErrUsernameTaken
	case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraintUsersEmailRole:
		return ErrEmailTaken
	case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraintEnrollmentPair:
		return ErrAlreadyEnrolled
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == constraintEnrollmentFK:
		return ErrCourseNotFound
	}
	return err
}

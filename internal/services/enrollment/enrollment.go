// Package services содержит бизнес-логику записи пользователей на курсы.
//
// Операция записи конкурентно-чувствительна: две одновременные попытки
// записать одного пользователя на один курс не должны создать две строки.
// Инвариант держит ограничение уникальности в базе, предварительная
// проверка существует только как быстрый путь.
package services

import (
	"context"
	"log/slog"

	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

// EnrollmentRepository определяет методы для работы с записями на курсы.
type EnrollmentRepository interface {
	// CreateEnrollment вставляет запись; повторная вставка возвращает ErrAlreadyEnrolled.
	CreateEnrollment(ctx context.Context, username string, courseID int) (*models.Enrollment, error)
	// ExistsEnrollment проверяет наличие записи (быстрый путь).
	ExistsEnrollment(ctx context.Context, username string, courseID int) (bool, error)
	// ListEnrollmentsByUsername возвращает записи пользователя с пагинацией.
	ListEnrollmentsByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Enrollment, error)
	// ListEnrollmentsByCourse возвращает записи на курс с пагинацией.
	ListEnrollmentsByCourse(ctx context.Context, courseID, limit, offset int) ([]*models.Enrollment, error)
}

// UserProvider возвращает данные пользователя для текста уведомления.
type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// CourseProvider возвращает карточку курса (с кешем поверх базы).
type CourseProvider interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
}

// Notifier публикует событие уведомления и возвращает сигнал успех/ошибка.
type Notifier interface {
	Notify(event models.NotificationEvent) error
}

// EnrollmentService реализует операции над реестром записей на курсы.
type EnrollmentService struct {
	repo     EnrollmentRepository
	users    UserProvider
	courses  CourseProvider
	notifier Notifier
	log      *slog.Logger
}

// NewEnrollmentService создает новый экземпляр EnrollmentService.
func NewEnrollmentService(repo EnrollmentRepository, users UserProvider, courses CourseProvider, notifier Notifier, log *slog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo:     repo,
		users:    users,
		courses:  courses,
		notifier: notifier,
		log:      log,
	}
}

// Enroll записывает пользователя на курс.
//
// Порядок внутри одной попытки строго последователен: проверка курса,
// проверка существующей записи, вставка, уведомление. Гонку двух
// одновременных вставок разрешает ограничение уникальности: проигравшая
// вставка возвращает тот же ErrAlreadyEnrolled, что и быстрый путь.
// Сбой публикации уведомления не откатывает созданную запись и
// возвращается как notified=false.
func (s *EnrollmentService) Enroll(ctx context.Context, username string, courseID int) (*models.Enrollment, bool, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, false, err
	}

	exists, err := s.repo.ExistsEnrollment(ctx, username, courseID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, repository.ErrAlreadyEnrolled
	}

	enrollment, err := s.repo.CreateEnrollment(ctx, username, courseID)
	if err != nil {
		return nil, false, err
	}
	s.log.Info("created new enrollment",
		slog.String("username", username), slog.Int("course_id", courseID))

	notified := true
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		s.log.Error("failed to load user for enrollment notification", sl.Err(err))
		notified = false
	} else if err := s.notifier.Notify(models.NotificationEvent{
		Type:        models.EventEnrollment,
		Username:    user.Username,
		Name:        user.Name,
		Email:       user.Email,
		CourseID:    course.ID,
		CourseTitle: course.Title,
	}); err != nil {
		s.log.Error("failed to publish enrollment notification", sl.Err(err))
		notified = false
	}

	return enrollment, notified, nil
}

// ListUserCourses возвращает записи пользователя, новые первыми.
func (s *EnrollmentService) ListUserCourses(ctx context.Context, username string, limit, offset int) ([]*models.Enrollment, error) {
	return s.repo.ListEnrollmentsByUsername(ctx, username, limit, offset)
}

// ListCourseStudents возвращает записи на курс, новые первыми.
func (s *EnrollmentService) ListCourseStudents(ctx context.Context, courseID, limit, offset int) ([]*models.Enrollment, error) {
	return s.repo.ListEnrollmentsByCourse(ctx, courseID, limit, offset)
}

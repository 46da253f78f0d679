package repository

import (
	"context"
	"fmt"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// CreateEnrollment вставляет запись о зачислении и возвращает её.
//
// Ограничение уникальности (username, course_id) в базе — единственная
// защита от гонки двух одновременных записей: повторная вставка
// возвращает ErrAlreadyEnrolled, вставка на несуществующий курс —
// ErrCourseNotFound.
func (s *Storage) CreateEnrollment(ctx context.Context, username string, courseID int) (*models.Enrollment, error) {
	const op = "storage.CreateEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollment (username, course_id)
			  VALUES ($1, $2)
			  RETURNING enrollment_date`
	e := &models.Enrollment{Username: username, CourseID: courseID}
	if err := s.DB.QueryRowContext(ctx, query, username, courseID).Scan(&e.EnrollmentDate); err != nil {
		if domainErr := translateConstraint(err); domainErr != err {
			return nil, fmt.Errorf("%s: %w", op, domainErr)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ExistsEnrollment проверяет наличие записи (username, course_id).
// Это быстрый путь для типового повторного запроса; истину под
// конкурентной нагрузкой устанавливает вставка.
func (s *Storage) ExistsEnrollment(ctx context.Context, username string, courseID int) (bool, error) {
	const op = "storage.ExistsEnrollment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM enrollment WHERE username = $1 AND course_id = $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, username, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListEnrollmentsByUsername возвращает записи пользователя с пагинацией,
// новые первыми.
func (s *Storage) ListEnrollmentsByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Enrollment, error) {
	const op = "storage.ListEnrollmentsByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, course_id, enrollment_date
			  FROM enrollment
			  WHERE username = $1
			  ORDER BY enrollment_date DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err = rows.Scan(&e.Username, &e.CourseID, &e.EnrollmentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEnrollmentsByCourse возвращает записи на курс с пагинацией,
// новые первыми.
func (s *Storage) ListEnrollmentsByCourse(ctx context.Context, courseID, limit, offset int) ([]*models.Enrollment, error) {
	const op = "storage.ListEnrollmentsByCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, course_id, enrollment_date
			  FROM enrollment
			  WHERE course_id = $1
			  ORDER BY enrollment_date DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, courseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err = rows.Scan(&e.Username, &e.CourseID, &e.EnrollmentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

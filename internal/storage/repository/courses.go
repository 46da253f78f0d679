package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// GetCourse возвращает курс по его ID.
func (s *Storage) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.GetCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, category, level, price, start_date, end_date
			  FROM courses
			  WHERE id = $1`
	c := &models.Course{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&c.ID, &c.Title, &c.Category, &c.Level, &c.Price,
		&c.StartDate, &c.EndDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrCourseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

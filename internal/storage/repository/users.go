package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает созданную запись.
// Нарушение уникальности username или пары (email, role) транслируется
// в ErrUsernameTaken или ErrEmailTaken.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, name, email, password_hash, role,
			      profile_image, profile_image_mime)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING created_at;`
	created := user
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Name, user.Email, user.PasswordHash, user.Role,
		user.ProfileImage, user.ProfileImageMime).Scan(&created.CreatedAt); err != nil {
		if domainErr := translateConstraint(err); domainErr != err {
			return nil, fmt.Errorf("%s: %w", op, domainErr)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, name, email, password_hash, role,
			      profile_image, profile_image_mime, created_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUserByEmailAndRole возвращает пользователя по паре (email, role).
// Почта уникальна только в пределах роли, поэтому поиск при входе
// всегда идёт по составному ключу.
func (s *Storage) GetUserByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	const op = "storage.GetUserByEmailAndRole"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, name, email, password_hash, role,
			      profile_image, profile_image_mime, created_at
			  FROM users
			  WHERE email = $1 AND role = $2`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email, role), op)
}

// UpdatePasswordHash заменяет хэш пароля пользователя.
func (s *Storage) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $1 WHERE username = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// DeleteUser удаляет учётную запись по username.
func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE username = $1`
	result, err := s.DB.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var profileImage []byte
	var profileImageMime sql.NullString
	if err := row.Scan(&u.Username, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &profileImage, &profileImageMime, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.ProfileImage = profileImage
	if profileImageMime.Valid {
		u.ProfileImageMime = profileImageMime.String
	}
	return u, nil
}

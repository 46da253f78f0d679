// Package services содержит бизнес-логику учётных записей: регистрацию,
// вход, смену пароля и удаление.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bsanthoshbsr/elearning-platform/internal/lib/jwt"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/password"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при любом несовпадении учётных данных.
// Сообщение едино для неизвестной почты и неверного пароля, чтобы не
// позволять перебор зарегистрированных адресов.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает созданную запись.
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmailAndRole возвращает пользователя по паре (email, role).
	GetUserByEmailAndRole(ctx context.Context, email, role string) (*models.User, error)
	// UpdatePasswordHash заменяет хэш пароля.
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	// DeleteUser удаляет учётную запись.
	DeleteUser(ctx context.Context, username string) error
}

// Notifier публикует событие уведомления и возвращает сигнал успех/ошибка.
type Notifier interface {
	Notify(event models.NotificationEvent) error
}

// AuthService отвечает за жизненный цикл учётных данных и выпуск токенов.
type AuthService struct {
	users    UserRepository
	hasher   *password.Hasher
	jwtMaker jwt.Maker
	notifier Notifier
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, hasher *password.Hasher, jwtMaker jwt.Maker, notifier Notifier, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		jwtMaker: jwtMaker,
		notifier: notifier,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// Запись сначала фиксируется в базе и только потом публикуется
// уведомление о регистрации: сбой коллаборатора уведомлений не
// откатывает созданную учётную запись, а лишь возвращается как
// notified=false.
func (s *AuthService) Register(ctx context.Context, user models.User, rawPassword string) (*models.User, bool, error) {
	if !models.IsValidRole(user.Role) {
		return nil, false, fmt.Errorf("unknown role: %q", user.Role)
	}
	hashed, err := s.hasher.GetHash(rawPassword)
	if err != nil {
		return nil, false, err
	}
	user.PasswordHash = hashed

	created, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, false, err
	}

	notified := true
	if err := s.notifier.Notify(models.NotificationEvent{
		Type:     models.EventRegistration,
		Username: created.Username,
		Name:     created.Name,
		Email:    created.Email,
	}); err != nil {
		s.log.Error("failed to publish registration notification", sl.Err(err))
		notified = false
	}
	return created, notified, nil
}

// Login проверяет пароль пользователя по паре (email, role) и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, email, rawPassword, role string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := s.hasher.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResetPassword заменяет пароль пользователя, чьё имя пришло из
// проверенного токена, а не из тела запроса. Уведомление публикуется
// после фиксации нового хэша; его сбой не откатывает смену пароля.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) (bool, error) {
	const op = "services.auth.ResetPassword"

	hashed, err := s.hasher.GetHash(newPassword)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePasswordHash(ctx, username, hashed); err != nil {
		return false, err
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		// Пароль уже сменён, уведомление без адреса отправить нельзя.
		s.log.Error("failed to load user for reset notification", sl.Err(err))
		return false, nil
	}

	notified := true
	if err := s.notifier.Notify(models.NotificationEvent{
		Type:     models.EventPasswordReset,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}); err != nil {
		s.log.Error("failed to publish password reset notification", sl.Err(err))
		notified = false
	}
	return notified, nil
}

// GetProfile возвращает учётную запись пользователя.
func (s *AuthService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetUserByUsername(ctx, username)
}

// DeleteAccount удаляет учётную запись по username.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	return s.users.DeleteUser(ctx, username)
}

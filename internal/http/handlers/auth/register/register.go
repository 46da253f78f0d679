// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Обработчик декодирует JSON, валидирует поля, делегирует создание
// учётной записи сервису аутентификации и возвращает созданного
// пользователя без хэша пароля. Конфликты уникальности (занятый
// username, почта в той же роли) отдаются как 400 с kind=conflict.
package register

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

// Request — входные данные для регистрации.
type Request struct {
	Username         string `json:"username" validate:"required,min=3,max=50"`
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=5"`
	Role             string `json:"role" validate:"required,oneof=student admin"`
	ProfileImage     string `json:"profile_image,omitempty"`
	ProfileImageMime string `json:"profile_image_mime,omitempty"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, user models.User, rawPassword string) (*models.User, bool, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учётную запись студента или администратора. Подтверждение отправляется письмом после фиксации записи.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Response "Созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или конфликт уникальности"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.KindValidation, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var profileImage []byte
	if req.ProfileImage != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ProfileImage)
		if err != nil {
			log.Error("failed to decode profile image", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindValidation, "profile_image must be base64-encoded"))
			return
		}
		profileImage = decoded
	}

	user := models.User{
		Username:         req.Username,
		Name:             req.Name,
		Email:            req.Email,
		Role:             req.Role,
		ProfileImage:     profileImage,
		ProfileImageMime: req.ProfileImageMime,
	}

	created, notified, err := h.service.Register(r.Context(), user, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			log.Error("username already exists", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindConflict, "username already exists"))
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("email already exists for role", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindConflict, "email already exists for this role"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.KindDependencyFailure, "failed to register user"))
		}
		return
	}

	log.Info("user registered", slog.String("username", created.Username), slog.String("role", created.Role))
	w.WriteHeader(http.StatusCreated)
	if !notified {
		render.JSON(w, r, response.OKWithWarning(created, "confirmation email could not be sent"))
		return
	}
	render.JSON(w, r, response.OKWithData(created))
}

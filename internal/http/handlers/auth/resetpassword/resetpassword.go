// Package resetpassword реализует HTTP-обработчик смены пароля.
//
// Операция работает только с личностью из проверенного токена:
// имя пользователя из тела запроса не принимается, чтобы нельзя было
// сменить пароль чужой учётной записи.
package resetpassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/middlewarectx"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
)

// Request — входные данные для смены пароля.
type Request struct {
	NewPassword string `json:"new_password" validate:"required,min=5"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ResetPassword(ctx context.Context, username, newPassword string) (bool, error)
}

// Handler обрабатывает HTTP-запросы на смену пароля.
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
// @Summary Смена пароля
// @Description Меняет пароль текущего пользователя. Подтверждение отправляется письмом; его сбой не откатывает смену.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Новый пароль"
// @Success 200 {object} response.Response "Пароль изменён"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.KindUnauthorized, "unauthorized"))
		return
	}

	notified, err := h.service.ResetPassword(r.Context(), username, req.NewPassword)
	if err != nil {
		log.Error("failed to reset password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindDependencyFailure, "failed to reset password"))
		return
	}

	log.Info("password reset", slog.String("username", username))
	if !notified {
		render.JSON(w, r, response.OKWithWarning(map[string]any{
			"username": username,
		}, "confirmation email could not be sent"))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": username,
	}))
}

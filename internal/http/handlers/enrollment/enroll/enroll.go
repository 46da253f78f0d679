// Package enroll реализует HTTP-обработчик записи студента на курс.
//
// Имя пользователя берётся из проверенного токена, из тела приходит
// только course_id. Повторная запись на тот же курс возвращает 400
// с kind=conflict независимо от того, кто её обнаружил — быстрая
// проверка или ограничение уникальности при вставке.
package enroll

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/middlewarectx"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

// Request — входные данные для записи на курс.
type Request struct {
	CourseID int `json:"course_id" validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики записи на курс.
type Service interface {
	Enroll(ctx context.Context, username string, courseID int) (*models.Enrollment, bool, error)
}

// Handler обрабатывает HTTP-запросы на запись.
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
// @Summary Запись на курс
// @Description Записывает текущего студента на курс. Пара (пользователь, курс) уникальна.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор курса"
// @Success 200 {object} response.Response "Созданная запись"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или повторная запись"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Сбой отправки уведомления или хранилища"
// @Security BearerAuth
// @Router /students/enrollments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.enroll"

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

	enrollment, notified, err := h.service.Enroll(r.Context(), username, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			log.Error("user is already enrolled", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindConflict, "user is already enrolled in this course"))
		case errors.Is(err, repository.ErrCourseNotFound):
			log.Error("course not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "course not found"))
		default:
			log.Error("failed to enroll", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.KindDependencyFailure, "failed to enroll"))
		}
		return
	}

	log.Info("enrollment created",
		slog.String("username", username), slog.Int("course_id", req.CourseID))

	// Запись уже зафиксирована и не откатывается: сбой коллаборатора
	// уведомлений отдаётся как 500 с созданной записью в теле.
	if !notified {
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Response{
			Status: response.StatusError,
			Kind:   response.KindDependencyFailure,
			Error:  "enrollment created but confirmation email could not be sent",
			Data:   enrollment,
		})
		return
	}
	render.JSON(w, r, response.OKWithData(enrollment))
}

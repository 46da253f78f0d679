// Package read реализует HTTP-обработчик чтения карточки курса.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

// Service описывает интерфейс чтения курса.
type Service interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
}

// Handler обрабатывает HTTP-запросы на чтение курса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Карточка курса
// @Description Возвращает курс по идентификатору.
// @Tags Courses
// @Produce  json
// @Param id path int true "Идентификатор курса"
// @Success 200 {object} response.Response "Курс"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		if err != nil {
			log.Error("invalid course id", sl.Err(err))
		} else {
			log.Error("invalid course id", slog.Int("course_id", id))
		}
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.KindValidation, "invalid course id"))
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			log.Error("course not found", slog.Int("course_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "course not found"))
			return
		}
		log.Error("failed to read course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindDependencyFailure, "failed to read course"))
		return
	}

	render.JSON(w, r, response.OKWithData(course))
}

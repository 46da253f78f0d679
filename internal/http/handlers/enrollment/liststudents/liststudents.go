// Package liststudents реализует HTTP-обработчик списка студентов курса
// для администратора.
package liststudents

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики списка записей на курс.
type Service interface {
	ListCourseStudents(ctx context.Context, courseID, limit, offset int) ([]*models.Enrollment, error)
}

// Handler обрабатывает HTTP-запросы администратора.
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
// @Summary Список студентов курса
// @Description Возвращает записи на курс с пагинацией, новые первыми. Только для администраторов.
// @Tags Enrollments
// @Produce  json
// @Param id path int true "Идентификатор курса"
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} response.Response "Список записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор курса"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admins/courses/{id}/enrollments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.liststudents"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || courseID <= 0 {
		if err != nil {
			log.Error("invalid course id", sl.Err(err))
		} else {
			log.Error("invalid course id", slog.Int("course_id", courseID))
		}
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.KindValidation, "invalid course id"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.ListCourseStudents(r.Context(), courseID, limit, offset)
	if err != nil {
		log.Error("failed to list course enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindDependencyFailure, "failed to list enrollments"))
		return
	}

	log.Info("list course enrollments", slog.Int("course_id", courseID), slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count":  len(res),
		"enrollments": res,
	}))
}

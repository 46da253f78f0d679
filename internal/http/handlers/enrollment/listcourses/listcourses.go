// Package listcourses реализует HTTP-обработчик списка курсов,
// на которые записан текущий студент.
package listcourses

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/middlewarectx"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики списка записей студента.
type Service interface {
	ListUserCourses(ctx context.Context, username string, limit, offset int) ([]*models.Enrollment, error)
}

// Handler обрабатывает HTTP-запросы на список записей.
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
// @Summary Список курсов студента
// @Description Возвращает записи текущего студента с пагинацией, новые первыми.
// @Tags Enrollments
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} response.Response "Список записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /students/enrollments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.listcourses"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.KindUnauthorized, "unauthorized"))
		return
	}

	res, err := h.service.ListUserCourses(r.Context(), username, limit, offset)
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindDependencyFailure, "failed to list enrollments"))
		return
	}

	log.Info("list enrollments", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count":  len(res),
		"enrollments": res,
	}))
}

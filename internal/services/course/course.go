// Package services содержит логику чтения карточек курсов с кешированием.
// Каталог (фильтрация, валидация полей, расчёт стоимости) живёт вне ядра;
// здесь курс нужен для проверки существования при записи и для уведомлений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// CourseRepository определяет чтение курсов из хранилища.
type CourseRepository interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CourseService отдаёт карточки курсов, снимая повторные чтения с базы.
type CourseService struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// NewCourseService создает новый экземпляр CourseService.
func NewCourseService(repo CourseRepository, cache Cache, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetCourse возвращает курс по ID, сперва заглянув в кеш.
// Ошибки кеша не фатальны: при любом сбое чтение уходит в базу.
func (s *CourseService) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	cacheKey := fmt.Sprintf("course:%d", id)

	var cached models.Course
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read course from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, course, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return course, nil
}

// Package elearning предоставляет маршруты для основного приложения.
package elearning

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/auth/login"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/auth/register"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/auth/resetpassword"
	courseread "github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/course/read"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/enrollment/enroll"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/enrollment/listcourses"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/enrollment/liststudents"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/health"
	userread "github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/user/read"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/handlers/user/remove"
	"github.com/bsanthoshbsr/elearning-platform/internal/http/middlewarectx"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/jwt"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
	authservice "github.com/bsanthoshbsr/elearning-platform/internal/services/auth"
	courseservice "github.com/bsanthoshbsr/elearning-platform/internal/services/course"
	enrollmentservice "github.com/bsanthoshbsr/elearning-platform/internal/services/enrollment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	courseService *courseservice.CourseService,
	enrollmentService *enrollmentservice.EnrollmentService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/register", register.New(logger, authService).ServeHTTP)
			r.Post("/login", login.New(logger, authService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))

			r.Get("/courses/{id}", courseread.New(logger, courseService).ServeHTTP)
			r.Get("/users/me", userread.New(logger, authService).ServeHTTP)
			r.Put("/password", resetpassword.New(logger, authService).ServeHTTP)

			r.Route("/students", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleStudent, logger))
				r.Post("/enrollments", enroll.New(logger, enrollmentService).ServeHTTP)
				r.Get("/enrollments", listcourses.New(logger, enrollmentService).ServeHTTP)
			})

			r.Route("/admins", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Get("/courses/{id}/enrollments", liststudents.New(logger, enrollmentService).ServeHTTP)
				r.Delete("/users/{username}", remove.New(logger, authService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

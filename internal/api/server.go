package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/service"
)

// Server is the REST surface over the booking, user and catalog services.
type Server struct {
	echo     *echo.Echo
	logger   *zap.Logger
	bookings *service.BookingService
	users    *service.UserService
	catalog  *service.CatalogService
}

func NewServer(
	jwtSecret string,
	logger *zap.Logger,
	bookings *service.BookingService,
	users *service.UserService,
	catalog *service.CatalogService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{
		echo:     e,
		logger:   logger,
		bookings: bookings,
		users:    users,
		catalog:  catalog,
	}
	s.routes(jwtSecret)
	return s
}

func (s *Server) routes(jwtSecret string) {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := s.echo.Group("/api")
	api.GET("/services", s.listServices)
	api.GET("/services/:id", s.getService)
	api.GET("/tutors", s.listTutors)

	bookings := api.Group("/bookings", Auth(jwtSecret))
	bookings.POST("", s.createBooking)
	bookings.GET("", s.listBookings)
	bookings.GET("/my", s.listMyBookings)
	bookings.GET("/:id", s.getBooking)
	bookings.PUT("/:id/status", s.updateBookingStatus)
	bookings.POST("/:id/feedback", s.submitFeedback)
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("took", time.Since(start)),
			)
			return err
		}
	}
}

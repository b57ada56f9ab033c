package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) listServices(c echo.Context) error {
	services, err := s.catalog.List(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, services)
}

func (s *Server) getService(c echo.Context) error {
	svc, err := s.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

func (s *Server) listTutors(c echo.Context) error {
	tutors, err := s.users.ListTutors(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, tutors)
}

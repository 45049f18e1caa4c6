package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
	s.Router.GET("/readiness", s.readiness)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "OK",
	})
}

// readiness godoc
// @Summary Readiness Check
// @Description Check that the genre catalog can be loaded
// @Tags health
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} APIResponse
// @Router /readiness [get]
func (s *Server) readiness(c echo.Context) error {
	if s.MovieService == nil {
		return writeSuccess(c, http.StatusOK, map[string]string{"status": "OK"})
	}

	genres, err := s.MovieService.Genres(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"status": "OK",
		"genres": len(genres),
	})
}

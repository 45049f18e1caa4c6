package httpserver

import (
	"net/http"
	"strings"

	"moviebot/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/genres", s.handleListGenres)
	g.GET("/genres/:name", s.handleGenreValidity)
	g.GET("/recommendations", s.handleDiscoverByGenres)
	g.POST("/recommendations", s.handleDiscoverByText)
}

// handleListGenres godoc
// @Summary List Genres
// @Description List the genres known to the movie catalog
// @Tags movies
// @Produce json
// @Success 200 {array} movie.Genre
// @Failure 503 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	genres, err := s.MovieService.Genres(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, genres)
}

// handleGenreValidity godoc
// @Summary Check Genre
// @Description Tell whether a name is a catalog genre, case-insensitively
// @Tags movies
// @Produce json
// @Param name path string true "Genre name"
// @Success 200 {object} GenreValidity
// @Failure 503 {object} APIResponse
// @Router /api/genres/{name} [get]
func (s *Server) handleGenreValidity(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	name := c.Param("name")
	valid, err := s.MovieService.IsValidGenre(c.Request().Context(), name)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, GenreValidity{Name: name, Valid: valid})
}

// handleDiscoverByGenres godoc
// @Summary Recommend By Genres
// @Description Discover popular, well rated movies in all of the given genres
// @Tags recommendations
// @Produce json
// @Param genres query string true "Comma separated genre names"
// @Param language query string false "Original language, default en"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/recommendations [get]
func (s *Server) handleDiscoverByGenres(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	genres := splitList(c.QueryParam("genres"))
	language := strings.TrimSpace(c.QueryParam("language"))

	movies, err := s.MovieService.DiscoverByGenres(c.Request().Context(), genres, language)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, movies)
}

// handleDiscoverByText godoc
// @Summary Recommend By Text
// @Description Detect genres in free text and discover matching movies
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Free text"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/recommendations [post]
func (s *Server) handleDiscoverByText(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	movies, err := s.MovieService.DiscoverByText(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, movies)
}

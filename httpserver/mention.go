package httpserver

import (
	"net/http"

	"moviebot/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPrivateMentionRoutes(g *echo.Group) {
	g.POST("/mentions", s.handleMention)
}

// handleMention godoc
// @Summary Reply To Mention
// @Description Answer a post with a movie recommendation, as if it came from the stream
// @Tags mentions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MentionRequest true "Post to answer"
// @Success 201 {object} mention.Reply
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /api/mentions [post]
func (s *Server) handleMention(c echo.Context) error {
	if s.MentionService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "mention service not configured")
	}

	var req MentionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := s.MentionService.Reply(c.Request().Context(), req.ToMention())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, reply)
}

package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// @title Moviebot API
// @version 1.0
// @description Movie recommendations by genre or free text, plus a hook to answer mentions by hand.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}

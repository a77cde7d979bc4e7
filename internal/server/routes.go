package server

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

func (s *Server) setupRoutes() (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(
		s.correlationIDMiddleware(),
		s.loggingMiddleware(),
		s.securityHeadersMiddleware(),
		gin.CustomRecovery(s.recoverPanic),
	)
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.handleDashboard)
	r.GET("/chart.png", s.handleChart)
	r.GET("/healthz", s.handleHealth)

	return r, nil
}

package httpapi

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"signupservice/internal/app/dto"
	"signupservice/internal/app/http/handler"
	"signupservice/internal/app/http/middleware"
)

// NewRouter wires every route. staticDir is served under /static when it
// exists; pass "" to disable the bundled page.
func NewRouter(h *handler.Handler, log *zap.Logger, staticDir string) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.ZapRecovery(log),
		middleware.ZapLogger(log),
		middleware.Prometheus(),
	)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/activities", h.ActivityList)
	r.POST("/activities/:activity_name/signup", h.ActivitySignup)
	r.DELETE("/activities/:activity_name/participants", h.ActivityUnregister)

	if staticDir != "" {
		if fi, err := os.Stat(staticDir); err == nil && fi.IsDir() {
			r.Static("/static", staticDir)
			r.GET("/", func(c *gin.Context) {
				c.Redirect(http.StatusTemporaryRedirect, "/static/")
			})
		} else {
			log.Warn("static directory not found, page disabled", zap.String("dir", staticDir))
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: dto.Error{
				Code:    "NOT_FOUND",
				Message: "route not found",
			},
		})
	})

	return r
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signupservice/internal/app/dto"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

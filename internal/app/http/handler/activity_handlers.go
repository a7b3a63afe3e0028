package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signupservice/internal/app/dto"
)

func (h *Handler) ActivityList(c *gin.Context) {
	list, err := h.ActivitySvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make(dto.ActivityDirectory, 0, len(list))
	for _, a := range list {
		resp = append(resp, dto.NamedActivity{
			Name: a.Name,
			Activity: dto.Activity{
				Description:     a.Description,
				Schedule:        a.Schedule,
				MaxParticipants: a.MaxParticipants,
				Participants:    append([]string{}, a.Participants...),
			},
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ActivitySignup(c *gin.Context) {
	uri, query, ok := h.bindParticipant(c)
	if !ok {
		return
	}

	if _, err := h.ActivitySvc.Signup(c.Request.Context(), uri.ActivityName, query.Email); err != nil {
		h.writeError(c, err)
		return
	}

	h.Log.Debug("participant signed up",
		zap.String("activity", uri.ActivityName),
		zap.String("email", query.Email),
	)
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", query.Email, uri.ActivityName),
	})
}

func (h *Handler) ActivityUnregister(c *gin.Context) {
	uri, query, ok := h.bindParticipant(c)
	if !ok {
		return
	}

	if _, err := h.ActivitySvc.Unregister(c.Request.Context(), uri.ActivityName, query.Email); err != nil {
		h.writeError(c, err)
		return
	}

	h.Log.Debug("participant unregistered",
		zap.String("activity", uri.ActivityName),
		zap.String("email", query.Email),
	)
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", query.Email, uri.ActivityName),
	})
}

func (h *Handler) bindParticipant(c *gin.Context) (dto.ActivityURI, dto.EmailQuery, bool) {
	var uri dto.ActivityURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, "activity_name is required")
		return uri, dto.EmailQuery{}, false
	}

	var query dto.EmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.badRequest(c, "email is required")
		return uri, query, false
	}

	return uri, query, true
}

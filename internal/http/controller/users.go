package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"itemsvc/internal/domain"
	"itemsvc/internal/http/dto"
)

func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err, domain.MsgUserFieldsRequired)
		return
	}
	created, err := h.svc.CreateUser(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status())
}

func (h *Handler) Health(c *gin.Context) {
	c.Status(http.StatusOK)
}

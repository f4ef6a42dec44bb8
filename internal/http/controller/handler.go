package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"itemsvc/internal/config"
	"itemsvc/internal/domain"
	"itemsvc/internal/events"
	"itemsvc/internal/service/catalog"
)

type Handler struct {
	cfg *config.Config
	svc *catalog.Service
	hub *events.Hub
	log *zap.Logger
}

func NewHandler(cfg *config.Config, svc *catalog.Service, hub *events.Hub, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, hub: hub, log: logger}
}

// respondError writes validation and not-found failures as plain text.
func (h *Handler) respondError(c *gin.Context, err error) {
	var domainErr *domain.Error
	switch {
	case errors.Is(err, domain.ErrValidation) && errors.As(err, &domainErr):
		c.String(http.StatusBadRequest, domainErr.Message)
	case errors.Is(err, domain.ErrNotFound) && errors.As(err, &domainErr):
		c.String(http.StatusNotFound, domainErr.Message)
	default:
		_ = c.Error(err)
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// bindFailed reports a request that did not pass binding as a validation error with message.
func (h *Handler) bindFailed(c *gin.Context, err error, message string) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		h.log.Debug("request validation failed", zap.String("path", c.FullPath()), zap.Strings("fields", fields))
	} else {
		h.log.Debug("request binding failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	h.respondError(c, domain.NewValidationError(message))
}

package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"itemsvc/internal/apidocs"
	"itemsvc/internal/config"
	"itemsvc/internal/http/controller"
	"itemsvc/internal/http/middleware"
	"itemsvc/internal/metrics"
)

const apiVersion = "1.0.0"

func NewRouter(cfg *config.Config, handler *controller.Handler, m *metrics.Metrics, logger *zap.Logger) (*gin.Engine, error) {
	routes := Routes(handler)
	if err := ValidateOrder(routes); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
		otelgin.Middleware(cfg.OTELServiceName),
		middleware.Metrics(m),
	)

	for _, r := range routes {
		router.Handle(r.Method, r.Path, r.Handler)
	}

	doc, err := apidocs.Build(context.Background(), cfg.OTELServiceName, apiVersion, endpoints(routes))
	if err != nil {
		return nil, err
	}
	serveDoc := func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	}
	router.GET("/api-docs", serveDoc)
	router.GET("/api-docs/openapi.json", serveDoc)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return router, nil
}

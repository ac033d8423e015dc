package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "recall-assistant/internal/chat/delivery/http"
	"recall-assistant/internal/model"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.observe())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

// observe records one metric sample per request, keyed by the matched route.
func (srv *HTTPServer) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		srv.metrics.ObserveHTTP(route, strconv.Itoa(c.Writer.Status()))
		srv.l.Debugf(c.Request.Context(), "%s %s -> %d (%s)", c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metrics != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))
	}

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv *HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	var mw []gin.HandlerFunc
	if srv.rateLimit.Enabled {
		limiter, err := newRateLimiter(srv.rateLimit)
		if err != nil {
			return err
		}
		mw = append(mw, srv.limit(limiter))
		srv.l.Infof(ctx, "Chat rate limit: %d requests/min per user", srv.rateLimit.RequestsPerMin)
	}

	h := chatHTTP.New(srv.l, srv.chatUC, srv.scope)
	chatHTTP.RegisterRoutes(api, h, mw...)
	srv.l.Infof(ctx, "Chat routes registered at POST /api/v1/chat and POST /api/v1/chat/reset")

	return nil
}

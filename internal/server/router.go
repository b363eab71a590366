package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Priyanka-kale21/webhack/docs"
)

// MaxBodyBytes caps request bodies on every route.
const MaxBodyBytes = 1 << 20

// RouteRegistrar defines anything that can wire its routes into a Gin group.
type RouteRegistrar interface {
	// RegisterRoutes should add one or more routes on the provided router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// Options configures the global middleware.
type Options struct {
	// CORSOrigins lists allowed origins; empty allows any origin.
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

// RegisterRoutes wires middleware, swagger, root-level routes (health) and
// the /api group.
func RegisterRoutes(
	r *gin.Engine,
	opts Options,
	rootRegs []RouteRegistrar,
	apiRegs []RouteRegistrar,
) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// Global middleware
	r.Use(requestLogger(log), gin.Recovery(), corsMiddleware(opts.CORSOrigins), limitBody(MaxBodyBytes))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	for _, reg := range rootRegs {
		reg.RegisterRoutes(&r.RouterGroup)
	}

	api := r.Group("/api")
	for _, reg := range apiRegs {
		reg.RegisterRoutes(api)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// requestLogger writes one structured access-log line per request.
func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Truncate(time.Microsecond),
			"client":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Error("request failed")
			return
		}
		entry.Info("request")
	}
}

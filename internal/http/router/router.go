package router

import (
	"net/http"
	"time"

	apphttp "homegate_search/internal/http"
	"homegate_search/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the gin engine with shared middleware and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())

	if origins := app.Config.GetCORSOrigins(); len(origins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
			ExposeHeaders:    []string{httpkit.HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	engine.GET("/api/health", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if app.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(app.Metrics))
	}

	v1 := engine.Group("/api/v1")
	if limit := app.Config.GetGatewayRateLimit(); limit > 0 {
		burst := int(limit)
		if burst < 1 {
			burst = 1
		}
		limiter := httpkit.NewIPRateLimiter(rate.Limit(limit), burst, app.Logger)
		v1.Use(limiter.RateLimit())
	}

	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     v1,
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Debug("registered module routes", "module", module.Name())
	}

	return engine
}

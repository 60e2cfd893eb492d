package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	appointmenthandler "github.com/bookdesk/booking-api/internal/handler/appointment"
	authhandler "github.com/bookdesk/booking-api/internal/handler/auth"
	bizconfighandler "github.com/bookdesk/booking-api/internal/handler/bizconfig"
	cataloghandler "github.com/bookdesk/booking-api/internal/handler/catalog"
	healthhandler "github.com/bookdesk/booking-api/internal/handler/health"
	paymenthandler "github.com/bookdesk/booking-api/internal/handler/payment"
	reporthandler "github.com/bookdesk/booking-api/internal/handler/report"
	userhandler "github.com/bookdesk/booking-api/internal/handler/user"
	"github.com/bookdesk/booking-api/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *authhandler.Handler
	User        *userhandler.Handler
	Catalog     *cataloghandler.Handler
	Appointment *appointmenthandler.Handler
	Payment     *paymenthandler.Handler
	BizConfig   *bizconfighandler.Handler
	Report      *reporthandler.Handler
	Health      *healthhandler.Handler
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
	MetricsPrefix  string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func New(auth *middleware.AuthMiddleware, handlers Handlers, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  newRouterMetrics(cfg.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(cfg.CORS))

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
	engine.Use(limiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	r.handlers.Health.RegisterRoutes(root)
	root.GET("/metrics", r.handlers.Health.MetricsHandler)

	api := r.engine.Group("/api")

	r.handlers.Auth.RegisterRoutes(api)
	r.handlers.User.RegisterRoutes(api, r.auth)
	r.handlers.Catalog.RegisterRoutes(api, r.auth)
	r.handlers.Appointment.RegisterRoutes(api, r.auth)
	r.handlers.Payment.RegisterRoutes(api, r.auth)
	r.handlers.BizConfig.RegisterRoutes(api, r.auth)
	r.handlers.Report.RegisterRoutes(api, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP error responses",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}

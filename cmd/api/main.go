package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bookdesk/booking-api/internal/config"
	"github.com/bookdesk/booking-api/internal/email"
	appointmenthandler "github.com/bookdesk/booking-api/internal/handler/appointment"
	authhandler "github.com/bookdesk/booking-api/internal/handler/auth"
	bizconfighandler "github.com/bookdesk/booking-api/internal/handler/bizconfig"
	cataloghandler "github.com/bookdesk/booking-api/internal/handler/catalog"
	healthhandler "github.com/bookdesk/booking-api/internal/handler/health"
	paymenthandler "github.com/bookdesk/booking-api/internal/handler/payment"
	reporthandler "github.com/bookdesk/booking-api/internal/handler/report"
	userhandler "github.com/bookdesk/booking-api/internal/handler/user"
	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/repository/postgres"
	"github.com/bookdesk/booking-api/internal/router"
	appointmentsvc "github.com/bookdesk/booking-api/internal/service/appointment"
	authsvc "github.com/bookdesk/booking-api/internal/service/auth"
	bizconfigsvc "github.com/bookdesk/booking-api/internal/service/bizconfig"
	catalogsvc "github.com/bookdesk/booking-api/internal/service/catalog"
	paymentsvc "github.com/bookdesk/booking-api/internal/service/payment"
	reportsvc "github.com/bookdesk/booking-api/internal/service/report"
	usersvc "github.com/bookdesk/booking-api/internal/service/user"
	"github.com/bookdesk/booking-api/pkg/auth"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT secret is not configured")
	}

	db, err := postgres.NewDB(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid redis URL")
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	userRepo := postgres.NewUserRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	configRepo := postgres.NewBusinessConfigRepository(db)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	mailer := email.NewSender(cfg.SMTP)

	authService := authsvc.NewService(userRepo, jwtService)
	userService := usersvc.NewService(userRepo, mailer)
	catalogService := catalogsvc.NewService(serviceRepo)
	appointmentService := appointmentsvc.NewService(appointmentRepo, serviceRepo, userRepo)
	intentStore := paymentsvc.NewMemoryIntentStore()
	if redisClient != nil {
		intentStore = paymentsvc.NewRedisIntentStore(redisClient)
	}
	paymentService := paymentsvc.NewService(appointmentRepo, serviceRepo, intentStore)
	configService := bizconfigsvc.NewService(configRepo)
	reportService := reportsvc.NewService(appointmentRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	r := router.New(authMiddleware, router.Handlers{
		Auth:        authhandler.NewHandler(authService),
		User:        userhandler.NewHandler(userService),
		Catalog:     cataloghandler.NewHandler(catalogService),
		Appointment: appointmenthandler.NewHandler(appointmentService),
		Payment:     paymenthandler.NewHandler(paymentService),
		BizConfig:   bizconfighandler.NewHandler(configService),
		Report:      reporthandler.NewHandler(reportService),
		Health:      healthhandler.NewHandler(db, redisClient),
	}, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           corsConfig,
		MetricsPrefix:  "booking_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

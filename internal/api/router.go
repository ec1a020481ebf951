package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/choralis/choir-api/docs"
	"github.com/choralis/choir-api/internal/api/handler"
	"github.com/choralis/choir-api/internal/api/middleware"
	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/service"
	"github.com/choralis/choir-api/internal/infrastructure/config"
	mongodb "github.com/choralis/choir-api/internal/infrastructure/db/mongo"
	redisdb "github.com/choralis/choir-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/choralis/choir-api/internal/infrastructure/http/handlers"
	"github.com/choralis/choir-api/internal/infrastructure/queue"
	"github.com/choralis/choir-api/internal/infrastructure/sms"
)

// NewRouter builds the Echo instance with every route registered and returns
// it together with the notification dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("choir"))

	// --- Repositories ---
	memberRepo := mongodb.NewMemberRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	claimRepo := mongodb.NewClaimRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	// --- Services ---
	tokenService := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
		PhoneTTL: cfg.JWT.PhoneTTL,
	})

	notificationService := service.NewNotificationService(notificationRepo, componentLog(log, "notifications"))
	dispatcher := queue.NewDispatcher(cfg.Queue.Workers, notificationService, componentLog(log, "dispatcher"))

	otpStore := redisdb.NewOTPStore(rdb, cfg.Redis.OTPTTL)
	smsSender := sms.NewLogSender(componentLog(log, "sms"))
	authService := service.NewAuthService(memberRepo, tokenService, otpStore, smsSender, componentLog(log, "auth"))
	memberService := service.NewMemberService(memberRepo, componentLog(log, "members"))

	guard := redisdb.NewEscalationGuard(rdb, cfg.Redis.GuardTTL)
	escalationEngine := service.NewEscalationEngine(attendanceRepo, memberRepo, guard, dispatcher, componentLog(log, "escalation"))
	attendanceService := service.NewAttendanceService(attendanceRepo, eventRepo, memberRepo, escalationEngine, componentLog(log, "attendance"))

	eventService := service.NewEventService(eventRepo, memberRepo, dispatcher, componentLog(log, "events"))
	claimService := service.NewClaimService(claimRepo, dispatcher, componentLog(log, "claims"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	eventHandler := handler.NewEventHandler(eventService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	claimHandler := handler.NewClaimHandler(claimService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	authMW := middleware.Auth(tokenService)

	// --- Auth routes (no token required) ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/otp/request", authHandler.RequestOTP)
	auth.POST("/otp/login", authHandler.LoginPhone)

	// --- Role namespaces ---
	admin := e.Group("/v1/admin", authMW, middleware.RequireRole(authService, domain.RoleAdmin))
	admin.GET("/members", memberHandler.List)
	admin.PUT("/members/:id/role", memberHandler.SetRole)
	admin.PUT("/members/:id/active", memberHandler.SetActive)

	secretary := e.Group("/v1/secretary", authMW, middleware.RequireRole(authService, domain.RoleSecretary))
	secretary.POST("/events", eventHandler.Create)
	secretary.POST("/attendance", attendanceHandler.Mark)
	secretary.GET("/events/:id/attendance", attendanceHandler.ListByEvent)

	discipline := e.Group("/v1/discipline", authMW, middleware.RequireRole(authService, domain.RoleDisciplinarian))
	discipline.POST("/attendance", attendanceHandler.Mark)
	discipline.GET("/events/:id/attendance", attendanceHandler.ListByEvent)
	discipline.GET("/claims", claimHandler.ListForReview)
	discipline.PUT("/claims/:id/status", claimHandler.UpdateStatus)

	singer := e.Group("/v1/singer", authMW, middleware.RequireRole(authService, domain.RoleSinger))
	singer.POST("/claims", claimHandler.Submit)
	singer.GET("/claims", claimHandler.ListOwn)

	// Any active member, whatever the role.
	me := e.Group("/v1/me", authMW, middleware.RequireActive(authService))
	me.GET("/events", eventHandler.ListUpcoming)
	me.GET("/events/:id", eventHandler.Get)
	me.GET("/notifications", notificationHandler.List)
	me.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e, dispatcher
}

func componentLog(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

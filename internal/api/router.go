package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/corpspend/expense-api/internal/api/handler"
	"github.com/corpspend/expense-api/internal/api/middleware"
	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
	"github.com/corpspend/expense-api/internal/infrastructure/mail"
)

// Deps carries every dependency the router needs, constructed once at startup
// and passed in explicitly.
type Deps struct {
	AuthService    ports.AuthService
	ExpenseService ports.ExpenseService
	ReportService  ports.ReportService

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
	// Outbox is non-nil when the mail channel runs in preview mode; the
	// debug outbox route is registered only then.
	Outbox *mail.Outbox
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("corpspend"))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	expenseHandler := handler.NewExpenseHandler(d.ExpenseService)
	reportHandler := handler.NewReportHandler(d.ReportService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	authMiddleware := middleware.Auth(d.JWTSecret)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", readinessHandler.Readiness)

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/users", authHandler.Users, authMiddleware)

	// --- Expense routes (all protected) ---
	expenses := api.Group("/expenses", authMiddleware)
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/approve/:id", expenseHandler.Transition,
		middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	expenses.POST("/send-report", reportHandler.SendReport)
	expenses.GET("/export/csv", reportHandler.ExportCsv)

	// --- Debug outbox (preview mode only) ---
	if d.Outbox != nil {
		outboxHandler := handler.NewOutboxHandler(d.Outbox)
		e.GET("/debug/outbox/:id", outboxHandler.Get)
	}

	return e
}

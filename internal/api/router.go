package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/ws"
)

type Dependencies struct {
	AnalysisService handler.AnalysisService
	Hub             *ws.Hub
	ReadinessChecks map[string]handler.ReadinessCheck
	RateLimitMax    int
	RateLimitWindow time.Duration
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
	cancelHub   context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "HairMatch API",
		BodyLimit:    32 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	var checks map[string]handler.ReadinessCheck
	if r.deps != nil {
		checks = r.deps.ReadinessChecks
	}
	healthHandler := handler.NewHealthHandler(checks)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	if r.deps == nil {
		return
	}

	if r.deps.Hub != nil {
		hubCtx, hubCancel := context.WithCancel(context.Background())
		r.cancelHub = hubCancel
		go r.deps.Hub.Run(hubCtx)

		// WebSocket endpoint, registered before the limiter so long-lived
		// connections do not count against it
		v1.Get("/ws", ws.UpgradeMiddleware(), ws.Handler(r.deps.Hub))
	}

	// Rate limiting (per client IP)
	r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Max:    r.deps.RateLimitMax,
		Window: r.deps.RateLimitWindow,
	})
	v1.Use(r.rateLimiter.Handler())

	analysisHandler := handler.NewAnalysisHandler(r.deps.AnalysisService, validator.New(), r.logger)

	// Analysis routes
	v1.Post("/analysis/scan", analysisHandler.Scan)
	v1.Post("/analysis/landmarks", analysisHandler.AnalyzeLandmarks)
	v1.Post("/analysis/upload", analysisHandler.Upload)
	v1.Get("/analysis/current", analysisHandler.Current)

	// Hairstyle routes
	v1.Get("/hairstyles", analysisHandler.Gallery)
	v1.Get("/hairstyles/:name/compatibility", analysisHandler.Compatibility)
	v1.Get("/hairstyles/:name/preview", analysisHandler.Preview)

	// 3D preview routes
	v1.Post("/preview/hair/next", analysisHandler.NextHairModel)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown stops background workers and drains open connections until ctx expires
func (r *Router) Shutdown(ctx context.Context) error {
	// Stop WebSocket hub
	if r.cancelHub != nil {
		r.cancelHub()
	}

	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.ShutdownWithContext(ctx)
}

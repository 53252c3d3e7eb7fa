package server

import (
	"log"

	"tabular-qa-be/internal/bootstrap"
	"tabular-qa-be/internal/config"
	"tabular-qa-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App. The transport body limit sits well above the
	// upload cap so oversize uploads still reach the service's own size
	// check and get the 400 validation envelope, not a transport 413.
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit(cfg.Upload.MaxFileSizeMB),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "healthy"})
	})

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// bodyLimit leaves generous headroom (4x the cap plus multipart overhead)
// between the configured upload limit and the fasthttp hard limit.
func bodyLimit(maxFileSizeMB int) int {
	return (4*maxFileSizeMB + 16) * 1024 * 1024
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.AuthController.RegisterRoutes(app)
	c.FileController.RegisterRoutes(app)
	c.QueryController.RegisterRoutes(app)
}

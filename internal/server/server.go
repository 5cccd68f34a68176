package server

import (
	"context"

	"rfp-console/internal/bootstrap"
	"rfp-console/internal/config"
	"rfp-console/internal/pkg/serverutils"

	"github.com/ansrivas/fiberprometheus/v2"
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
	app := fiber.New(fiber.Config{
		BodyLimit:             50 * 1024 * 1024, // uploads travel base64-encoded inside intents
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))

	prometheus := fiberprometheus.New("rfp_console")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

// Run serves the bridge until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.container.Logger.Info("Server", "Bridge listening", map[string]interface{}{"addr": "http://localhost:" + s.cfg.App.BridgePort})
		errCh <- s.app.Listen(":" + s.cfg.App.BridgePort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.app.Shutdown()
	}
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	guard := serverutils.JwtMiddleware(cfg.App.BridgeJWTSecret)

	api := app.Group("/api")
	c.IntentController.RegisterRoutes(api, guard)
	c.StateController.RegisterRoutes(api, guard)
	c.ToastController.RegisterRoutes(api, guard)

	c.BlobController.RegisterRoutes(app, guard)
	c.StreamHandler.RegisterRoutes(app, guard)
}

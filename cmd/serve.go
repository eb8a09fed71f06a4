package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/hirelens/hirelens/pkg/errx"
	"github.com/hirelens/hirelens/pkg/logx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logx.Info("Starting hirelens API server...")

		container := NewContainer(cfg)
		defer container.Close()

		app := fiber.New(fiber.Config{
			AppName:               "hirelens API",
			DisableStartupMessage: true,
			ErrorHandler:          globalErrorHandler,
		})

		app.Use(recover.New())
		app.Use(cors.New(cors.Config{
			AllowOrigins: "*",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
		}))
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"status": "ok",
				"db":     container.DB.Ping() == nil,
				"redis":  container.Redis.Ping(c.Context()).Err() == nil,
			})
		})

		container.ResumeHandlers.RegisterRoutes(app)
		container.JDHandlers.RegisterRoutes(app)
		container.CandidateHandlers.RegisterRoutes(app)
		container.MatchHandlers.RegisterRoutes(app)
		container.AuditHandlers.RegisterRoutes(app)

		go func() {
			logx.Infof("Server listening on port %s", cfg.HTTPPort)
			if err := app.Listen(":" + cfg.HTTPPort); err != nil {
				logx.Fatalf("Server error: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		<-quit
		logx.Info("Shutting down server...")

		if err := app.Shutdown(); err != nil {
			logx.Errorf("Server forced to shutdown: %v", err)
		}

		logx.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

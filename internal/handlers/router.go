package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type AppConfig struct {
	BodyLimit  int
	StaticDir  string
	AccessLogs bool
}

// NewApp builds the Fiber application with middleware and routes.
func NewApp(cfg AppConfig, upload *UploadHandler, pages *PageHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer Extraction Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if cfg.AccessLogs {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Post("/api/upload-resume", upload.HandleUpload)

	// Health check
	app.Get("/", pages.HandleHealth)

	app.Static("/", cfg.StaticDir)
	app.Get("/*", pages.HandleSPA)

	return app
}

// ErrorHandler also receives transport errors from fasthttp, so a body over
// BodyLimit still gets the upload endpoint's FileTooLarge payload.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code == fiber.StatusRequestEntityTooLarge {
		return c.Status(code).JSON(models.ErrorResponse{Error: models.MsgFileTooLarge})
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

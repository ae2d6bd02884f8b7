package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

const HealthMessage = "✅ Resume parsing backend is running!"

// PageHandler serves the liveness text and the bundled single-page app.
type PageHandler struct {
	staticDir string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{staticDir: staticDir}
}

// HandleHealth handles GET /
func (h *PageHandler) HandleHealth(c *fiber.Ctx) error {
	return c.SendString(HealthMessage)
}

// HandleSPA serves the app's entry document for any unmatched GET.
func (h *PageHandler) HandleSPA(c *fiber.Ctx) error {
	index := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	return c.SendFile(index)
}

// Package webserver serves a local diagnostics endpoint for a running
// engine. It is read-only and intended for localhost use while
// debugging a search.
package webserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/AlexisOlson/lc0/internal/engine"
	"github.com/AlexisOlson/lc0/internal/options"
	"github.com/AlexisOlson/lc0/internal/version"
)

// Start runs the status server; it blocks until the listener fails.
func Start(host string, port int, opts *options.Registry, ctrl *engine.Controller) error {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	app.Use(logger.New(logger.Config{
		Format: "${time} WEB ${status} ${method} ${path} ${latency}\n",
	}))

	app.Get("/status", func(c *fiber.Ctx) error {
		fen, moves := ctrl.Position()
		return c.JSON(fiber.Map{
			"name":      "Lc0",
			"version":   version.String(),
			"fen":       fen,
			"moves":     moves,
			"searching": ctrl.Searching(),
		})
	})

	app.Get("/options", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"options": opts.UciLines(),
		})
	})

	return app.Listen(fmt.Sprintf("%s:%d", host, port))
}

package server

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/version"
)

// handleLiveness reports process liveness plus build metadata.
func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":  "ok",
		"version": version.Get(),
	})
}

// handleReadiness reports whether the snapshot directory is reachable.
// Snapshot writes are the only external dependency of the request path.
func (s *Server) handleReadiness(c echo.Context) error {
	if _, err := os.Stat(s.config.DataDir); err != nil {
		return c.JSON(503, map[string]any{
			"status": "unavailable",
			"error":  "snapshot directory not accessible",
		})
	}
	return c.JSON(200, map[string]any{"status": "ok"})
}

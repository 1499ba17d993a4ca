package http

import (
	nethttp "net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"grammarguide/internal/logger"
)

// registerStatic serves a built single-page frontend from dir. Unknown
// paths fall back to index.html so client-side routes resolve.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	indexPath := filepath.Join(dir, "index.html")
	if !isFile(indexPath) {
		logger.Warn("static index missing", "module", "http", "action", "serve", "resource", "static", "result", "failed", "path", indexPath)
		return
	}

	logger.Info("static assets enabled", "module", "http", "action", "serve", "resource", "static", "result", "ok", "dir", dir)

	fileServer := nethttp.FileServer(nethttp.Dir(dir))

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
			return echo.ErrNotFound
		}

		cleanPath := strings.TrimPrefix(path.Clean(requestPath), "/")
		if cleanPath != "." && cleanPath != "" && isFile(filepath.Join(dir, cleanPath)) {
			fileServer.ServeHTTP(c.Response(), c.Request())
			return nil
		}
		return c.File(indexPath)
	})
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "grammarguide/docs"
	"grammarguide/internal/handler"
)

// RouterConfig holds the transport settings that are not handler concerns.
type RouterConfig struct {
	StaticDir      string
	CORSOrigins    []string
	WritePerSecond float64
}

func NewRouter(grammarHandler *handler.GrammarHandler, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())
	e.Use(CORSMiddleware(cfg.CORSOrigins))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/healthz", grammarHandler.Health)

	api := e.Group("/api")
	grammarHandler.RegisterRoutes(api.Group("/grammar"), WriteRateLimiter(cfg.WritePerSecond))

	registerStatic(e, cfg.StaticDir)

	return e
}

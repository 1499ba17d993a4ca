package http

import (
	nethttp "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"grammarguide/internal/logger"
)

// RequestLoggerMiddleware logs HTTP requests using logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			status := res.Status

			log := logger.Debug
			result := "ok"
			switch {
			case status >= 500:
				log, result = logger.Error, "failed"
			case status >= 400:
				log, result = logger.Warn, "failed"
			}
			log("http request",
				"module", "http",
				"action", "request",
				"resource", "http",
				"result", result,
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			)

			return nil
		}
	}
}

// RequestIDMiddleware tags every response with a uuid in X-Request-Id,
// keeping an incoming id if the caller sent one.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// CORSMiddleware allows cross-origin access from origins. An empty list allows all.
func CORSMiddleware(origins []string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
		ExposedHeaders: []string{echo.HeaderXRequestID},
	})
	return echo.WrapMiddleware(c.Handler)
}

// WriteRateLimiter caps write requests per client IP. perSecond <= 0 disables it.
func WriteRateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("write rate limited", "module", "http", "action", "create", "resource", "entry", "result", "failed", "remote_ip", identifier)
			return c.JSON(nethttp.StatusTooManyRequests, map[string]string{"message": "Too many requests, slow down."})
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(nethttp.StatusForbidden, map[string]string{"message": "Unable to identify client."})
		},
	})
}

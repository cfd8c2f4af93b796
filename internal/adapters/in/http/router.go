package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"orders/internal/adapters/in/http/auth"
	"orders/internal/adapters/in/http/openapi"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocsOnce sync.Once

// NewRouter builds the echo instance: request logging and panic recovery for every
// route, /health and /swagger/* in the open, and the order API under /api behind
// bearer authentication and OpenAPI request validation.
func NewRouter(ctx context.Context, server *Server, tokens *auth.TokenService, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	if logger != nil {
		e.Use(requestLogger(logger))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", auth.Middleware(tokens), validator)
	RegisterHandlers(api, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// registerDocs publishes the document to swag, which echo-swagger reads. swag keeps a
// process-wide registry, so registration happens once.
func registerDocs(doc *openapi3.T) error {
	var err error
	registerDocsOnce.Do(func() {
		var raw []byte
		raw, err = doc.MarshalJSON()
		if err != nil {
			err = fmt.Errorf("marshal openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, &swag.Spec{
			Title:            doc.Info.Title,
			Version:          doc.Info.Version,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
	return err
}

package http

import (
	"log/slog"
	"net/http"
	"strings"

	"marketplace/internal/adapters/in/http/auth"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries what the router needs besides the order handlers.
type RouterConfig struct {
	ServiceName string
	Tokens      auth.Tokens
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// NewRouter builds the echo instance: global middlewares, the operational endpoints
// (/health, /metrics, /swagger/*), and the authenticated, contract-validated order API.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(Tracing(cfg.ServiceName))
	e.Use(RequestLogger(logger))
	e.Use(Metrics(cfg.Metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Use(orderRoutesOnly(BearerAuth(cfg.Tokens, logger)))
	e.Use(orderRoutesOnly(validator))

	servers.RegisterHandlers(e, server)

	return e, nil
}

// orderRoutesOnly applies mw to matched /orders routes. Unknown paths and the
// operational endpoints pass straight through.
func orderRoutesOnly(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(ctx echo.Context) error {
			if strings.HasPrefix(ctx.Path(), "/orders") {
				return wrapped(ctx)
			}
			return next(ctx)
		}
	}
}

package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/adapters/in/http/auth"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const principalKey = "principal"

// BearerAuth verifies the Authorization header and stores the caller's principal on
// the context. Requests without a valid token are answered with 401.
func BearerAuth(tokens auth.Tokens, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := tokens.Verify(auth.BearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization)))
			if err != nil {
				logger.DebugContext(ctx.Request().Context(), "Rejected credential", "error", err)
				ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="marketplace"`)
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: errs.ErrNotAuthenticated.Error(),
				})
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

func principalFrom(ctx echo.Context) (identity.Principal, error) {
	principal, ok := ctx.Get(principalKey).(identity.Principal)
	if !ok {
		return identity.Principal{}, errs.NewNotAuthenticatedError()
	}
	return principal, nil
}

// OpenAPIValidator rejects requests that do not match the API document with 400.
// Routes the document does not describe are passed through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	doc.Servers = nil
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrPathNotFound) || errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return next(ctx)
				}
				return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: findErr.Error()})
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(validationErr),
				})
			}

			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	reason := err.Error()

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		reason = schemaErr.Reason
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			reason = strings.Join(pointer, ".") + ": " + reason
		}
	}

	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		if schemaErr == nil {
			reason = requestErr.Reason
			if requestErr.Err != nil {
				reason = requestErr.Err.Error()
			}
		}
		switch {
		case requestErr.Parameter != nil:
			return "parameter " + requestErr.Parameter.Name + " is invalid: " + reason
		case requestErr.RequestBody != nil:
			return "request body is invalid: " + reason
		}
	}
	return reason
}

// Tracing starts a server span per request, continuing any trace passed in the
// W3C traceparent header.
func Tracing(serviceName string) echo.MiddlewareFunc {
	tracer := otel.Tracer(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			parent := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			route := ctx.Path()
			spanCtx, span := tracer.Start(parent, req.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("http.route", route),
				),
			)
			defer span.End()

			ctx.SetRequest(req.WithContext(spanCtx))

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
				span.RecordError(err)
			}

			status := ctx.Response().Status
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			return err
		}
	}
}

type httpObserver interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// Metrics records request count and latency per route template.
func Metrics(observer httpObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTP(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return err
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(ctx.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/observability"
	"github.com/spec-kit/nexushub/internal/repository"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

// RegisterMiddlewares attaches the request deadline, error rendering and
// request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

// requestTimeoutMiddleware bounds the user context, which assist calls and
// store lookups run under.
func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("session_id", sessionID(c)),
					zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				renderError(c, logger, metrics, err)
				err = nil
			}
		}()
		return c.Next()
	}
}

func renderError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, err error) {
	domainErr := apperrors.ToDomainError(classify(err))
	if metrics != nil {
		metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
	}

	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	if domainErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("session_id", sessionID(c)),
			zap.Error(domainErr))
	}
	_ = c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

// classify maps infrastructure errors that escape services onto API errors.
func classify(err error) error {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return apperrors.NewUnauthorized("session expired")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewDomainError("REQUEST_TIMEOUT", "request timed out", http.StatusGatewayTimeout, nil)
	case errors.Is(err, context.Canceled):
		return apperrors.NewDomainError("REQUEST_CANCELLED", "request cancelled", http.StatusServiceUnavailable, nil)
	}
	return err
}

func sessionID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.SessionID
	}
	return ""
}

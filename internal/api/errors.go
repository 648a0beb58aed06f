package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// notFoundOr maps the repository's not-found sentinel onto a typed domain
// error; anything else passes through unchanged.
func notFoundOr(err error, code, message string) error {
	if repository.IsNotFound(err) {
		return domain.NewNotFoundError(code, message)
	}
	return err
}

// ErrorSanitizer converts errors into client-safe responses while logging
// the unsanitized detail server-side under a correlation ID.
type ErrorSanitizer struct {
	logger *slog.Logger
}

// NewErrorSanitizer creates a new error sanitizer.
func NewErrorSanitizer(logger *slog.Logger) *ErrorSanitizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorSanitizer{logger: logger}
}

var defaultSanitizer = NewErrorSanitizer(nil)

// SanitizedErrorResponse handles an error with the package default sanitizer.
func SanitizedErrorResponse(c *gin.Context, err error) {
	defaultSanitizer.SanitizedErrorResponse(c, err)
}

// SanitizedErrorResponse logs the full error and writes the sanitized
// envelope to the client.
func (s *ErrorSanitizer) SanitizedErrorResponse(c *gin.Context, err error) {
	correlationID := s.getOrCreateCorrelationID(c)

	var domainErr *domain.Error
	isDomainError := errors.As(err, &domainErr)

	s.logError(c, err, correlationID, domainErr)

	statusCode, response := s.clientResponse(domainErr, isDomainError, correlationID)
	c.JSON(statusCode, response)
}

func (s *ErrorSanitizer) getOrCreateCorrelationID(c *gin.Context) string {
	if id, exists := c.Get("correlation_id"); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	if id := c.GetHeader("X-Correlation-ID"); id != "" {
		c.Set("correlation_id", id)
		return id
	}

	correlationID := uuid.New().String()
	c.Set("correlation_id", correlationID)
	c.Header("X-Correlation-ID", correlationID)
	return correlationID
}

func (s *ErrorSanitizer) logError(c *gin.Context, err error, correlationID string, domainErr *domain.Error) {
	args := []any{
		slog.String("correlation_id", correlationID),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("remote_addr", c.ClientIP()),
	}
	if userID := c.GetString("user_id"); userID != "" {
		args = append(args, slog.String("user_id", userID))
	}

	if domainErr != nil {
		args = append(args,
			slog.String("error_type", string(domainErr.Type)),
			slog.String("error_code", domainErr.Code),
			slog.String("error_message", domainErr.Message),
		)
		if domainErr.Cause != nil {
			args = append(args, slog.String("underlying_error", domainErr.Cause.Error()))
		}
		s.logger.Error("request failed", args...)
		return
	}

	args = append(args, slog.String("error", err.Error()))
	s.logger.Error("request failed with unexpected error", args...)
}

// clientResponse builds the envelope returned to the client. Only type-level
// generic messages go out; the real message stays in the log.
func (s *ErrorSanitizer) clientResponse(domainErr *domain.Error, isDomainError bool, correlationID string) (int, gin.H) {
	if !isDomainError {
		return http.StatusInternalServerError, gin.H{
			"success":        false,
			"correlation_id": correlationID,
			"error": gin.H{
				"type":    "INTERNAL_ERROR",
				"code":    "SYSTEM_ERROR",
				"message": "An unexpected error occurred. Please try again later.",
			},
		}
	}

	payload := gin.H{
		"type":    domainErr.Type,
		"code":    domainErr.Code,
		"message": clientMessage(domainErr.Type),
	}
	if domainErr.Type == domain.ValidationError && domainErr.Details != nil {
		if field, ok := domainErr.Details["field"]; ok {
			payload["field"] = field
		}
	}

	return statusCodeFor(domainErr.Type), gin.H{
		"success":        false,
		"correlation_id": correlationID,
		"error":          payload,
	}
}

func clientMessage(errorType domain.ErrorType) string {
	switch errorType {
	case domain.ValidationError:
		return "Invalid input provided"
	case domain.NotFoundError:
		return "Requested resource not found"
	case domain.ConflictError:
		return "Resource conflict occurred"
	case domain.AuthenticationError:
		return "Authentication failed"
	case domain.AuthorizationError:
		return "Access denied"
	case domain.ExternalServiceError:
		return "External service temporarily unavailable"
	default:
		return "An error occurred while processing your request"
	}
}

func statusCodeFor(errorType domain.ErrorType) int {
	switch errorType {
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.NotFoundError:
		return http.StatusNotFound
	case domain.ConflictError:
		return http.StatusConflict
	case domain.AuthenticationError:
		return http.StatusUnauthorized
	case domain.AuthorizationError:
		return http.StatusForbidden
	case domain.ExternalServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

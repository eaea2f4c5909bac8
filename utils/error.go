package utils

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"slotbook/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorKind classifies an AppError.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindServer     ErrorKind = "server"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "CONFLICT_ERROR"
	CodeNotAcceptable = "NOT_ACCEPTABLE"
	CodeServer        = "SERVER_ERROR"
)

// ErrorDetail describes one offending input.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

// AppError is the single error type services hand to the HTTP boundary.
type AppError struct {
	Kind          ErrorKind
	Code          string
	Message       string
	Details       []ErrorDetail
	ExceptionCode string
	HTTPStatus    int
	Err           error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a client-input or business-rule violation.
func NewValidationError(message string, details ...ErrorDetail) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Code:       CodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewConflictError reports a request that conflicts with stored state.
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewNotAcceptableError reports a request body in an unsupported content type.
func NewNotAcceptableError(message string) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Code:       CodeNotAcceptable,
		Message:    message,
		HTTPStatus: http.StatusNotAcceptable,
	}
}

// NewServerError wraps an unexpected failure.
func NewServerError(err error) *AppError {
	return &AppError{
		Kind:       KindServer,
		Code:       CodeServer,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// AsAppError extracts an AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Code          string        `json:"code"`
	Message       string        `json:"message"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
	ExceptionCode string        `json:"exceptionCode,omitempty"`
	Detail        string        `json:"detail,omitempty"`
}

// ClientErrorRule overrides the code and log level of one client status.
type ClientErrorRule struct {
	ErrorCode string
	LogLevel  zapcore.Level
}

// ErrorConfig shapes error responses. It is copied when the handler is built
// and never changes afterwards.
type ErrorConfig struct {
	Debug        bool
	ClientErrors map[int]ClientErrorRule
	ServerErrors []int
}

// DefaultErrorConfig renders 400, 406 and 409 as client errors.
func DefaultErrorConfig() ErrorConfig {
	return ErrorConfig{
		ClientErrors: map[int]ClientErrorRule{
			http.StatusBadRequest:    {LogLevel: zapcore.ErrorLevel},
			http.StatusNotAcceptable: {LogLevel: zapcore.ErrorLevel},
			http.StatusConflict:      {LogLevel: zapcore.ErrorLevel},
		},
		ServerErrors: []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout},
	}
}

// NewErrorConfig converts the loaded settings. Settings are validated at load
// time, so unparsable status keys are skipped here.
func NewErrorConfig(s config.ErrorSettings) ErrorConfig {
	cfg := DefaultErrorConfig()
	cfg.Debug = s.Debug
	if len(s.ClientErrors) > 0 {
		cfg.ClientErrors = make(map[int]ClientErrorRule, len(s.ClientErrors))
		for key, rule := range s.ClientErrors {
			status, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			cfg.ClientErrors[status] = ClientErrorRule{
				ErrorCode: rule.ErrorCode,
				LogLevel:  zapLevel(rule.LogLevel),
			}
		}
	}
	if len(s.ServerErrors) > 0 {
		cfg.ServerErrors = slices.Clone(s.ServerErrors)
	}
	return cfg
}

func (cfg ErrorConfig) clone() ErrorConfig {
	out := ErrorConfig{
		Debug:        cfg.Debug,
		ClientErrors: make(map[int]ClientErrorRule, len(cfg.ClientErrors)),
		ServerErrors: slices.Clone(cfg.ServerErrors),
	}
	for k, v := range cfg.ClientErrors {
		out.ClientErrors[k] = v
	}
	return out
}

// Render maps err to a status, a body and the level it should be logged at.
// Client statuses without a rule are rendered as server errors.
func (cfg ErrorConfig) Render(err error) (int, ErrorResponse, zapcore.Level) {
	appErr, ok := AsAppError(err)
	if ok && appErr.Kind != KindServer {
		if rule, known := cfg.ClientErrors[appErr.HTTPStatus]; known {
			body := ErrorResponse{
				Code:          appErr.Code,
				Message:       appErr.Message,
				Errors:        appErr.Details,
				ExceptionCode: appErr.ExceptionCode,
			}
			if body.Code == "" {
				body.Code = CodeValidation
			}
			if rule.ErrorCode != "" {
				body.Code = rule.ErrorCode
			}
			return appErr.HTTPStatus, body, rule.LogLevel
		}
	}

	status := http.StatusInternalServerError
	if ok && slices.Contains(cfg.ServerErrors, appErr.HTTPStatus) {
		status = appErr.HTTPStatus
	}
	body := ErrorResponse{Code: CodeServer, Message: "Internal server error"}
	if cfg.Debug && err != nil {
		body.Detail = err.Error()
	}
	return status, body, zapcore.ErrorLevel
}

// ErrorHandler renders the last error pushed with c.Error and turns panics
// into server errors.
func ErrorHandler(cfg ErrorConfig, logger *zap.Logger) gin.HandlerFunc {
	snapshot := cfg.clone()
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				LoggerFromContext(c, logger).Error("Unhandled panic", zap.Any("error", rec))
				status, body, _ := snapshot.Render(fmt.Errorf("panic: %v", rec))
				c.AbortWithStatusJSON(status, body)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body, level := snapshot.Render(err)
		if ce := LoggerFromContext(c, logger).Check(level, body.Message); ce != nil {
			ce.Write(zap.Int("status", status), zap.String("code", body.Code), zap.Error(err))
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// LoggerFromContext returns the request-scoped logger set by the request
// middleware, or fallback.
func LoggerFromContext(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info", "notice":
		return zapcore.InfoLevel
	case "warning":
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

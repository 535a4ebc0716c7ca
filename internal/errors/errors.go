package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ErrorCode string

const (
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeRateLimit        ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeDataFetch        ErrorCode = "DATA_FETCH_ERROR"
	CodeFilterValidation ErrorCode = "FILTER_VALIDATION_ERROR"
)

type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCode(code),
		Timestamp:  time.Now().UTC(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCode(code),
		Cause:      err,
		Timestamp:  time.Now().UTC(),
	}
}

// WithDetails returns e with details set, for chaining at construction.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func InternalWrap(err error, message string) *AppError {
	return Wrap(err, CodeInternal, message)
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func RateLimit(message string) *AppError {
	return New(CodeRateLimit, message)
}

// DataFetch marks a failed or unparseable upstream read. It is terminal for
// the current render pass.
func DataFetch(err error, message string) *AppError {
	return Wrap(err, CodeDataFetch, message)
}

// FilterValidation marks filter state rejected before filtering runs.
func FilterValidation(message string) *AppError {
	return New(CodeFilterValidation, message)
}

func FilterValidationWrap(err error, message string) *AppError {
	return Wrap(err, CodeFilterValidation, message)
}

// Is reports whether err is an *AppError carrying code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As converts any error to an *AppError, wrapping unknown errors as internal.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	appErr = Internal("An unexpected error occurred")
	appErr.Cause = err
	return appErr
}

func getStatusCode(code ErrorCode) int {
	switch code {
	case CodeBadRequest, CodeFilterValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeDataFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WarningCode identifies a non-fatal condition reported next to a result.
type WarningCode string

const CodeEmptyResult WarningCode = "EMPTY_RESULT"

type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// EmptyResult is attached when filtering legitimately leaves zero rows.
func EmptyResult() *Warning {
	return &Warning{
		Code:    CodeEmptyResult,
		Message: "Nenhum registro corresponde aos filtros selecionados",
	}
}

type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

func WriteError(w http.ResponseWriter, logger *slog.Logger, err error, requestID string) {
	appErr := As(err)
	appErr.RequestID = requestID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := ErrorResponse{
		Error:   appErr,
		Success: false,
	}

	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		logger.Error("failed to encode error response",
			"encode_error", encodeErr,
			"original_error", err,
			"request_id", requestID,
		)
		return
	}

	LogError(logger, appErr)
}

// LogError logs appErr at warn for client errors and error otherwise.
func LogError(logger *slog.Logger, appErr *AppError) {
	logLevel := slog.LevelError
	if appErr.StatusCode < 500 {
		logLevel = slog.LevelWarn
	}

	logger.Log(context.TODO(), logLevel, "request failed",
		"error_code", appErr.Code,
		"error_message", appErr.Message,
		"status_code", appErr.StatusCode,
		"request_id", appErr.RequestID,
		"cause", appErr.Cause,
	)
}

type SuccessResponse struct {
	Data    any      `json:"data"`
	Warning *Warning `json:"warning,omitempty"`
	Success bool     `json:"success"`
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessWithWarning(w, data, nil)
}

func WriteSuccessWithWarning(w http.ResponseWriter, data any, warning *Warning) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := SuccessResponse{
		Data:    data,
		Warning: warning,
		Success: true,
	}

	json.NewEncoder(w).Encode(response)
}

func WriteSuccessWithHeaders(w http.ResponseWriter, data any, warning *Warning, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	WriteSuccessWithWarning(w, data, warning)
}

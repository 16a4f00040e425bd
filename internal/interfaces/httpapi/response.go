package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// Responses follow the Google JSON style guide: {"apiVersion", "data"} on
// success and {"apiVersion", "error"} on failure.
const (
	apiVersion      = "2.0"
	errorDomain     = "draft-league"
	internalMessage = "operation failed"

	encodeFailureBody = `{"apiVersion":"2.0","error":{"code":500,"message":"operation failed","status":"INTERNAL"}}`
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var (
	errInternal = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	errConflict = mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ALREADY_EXISTS"}
)

// errorRules is checked in order; the first sentinel found in the chain wins.
var errorRules = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrUnauthenticated, mappedError{http.StatusUnauthorized, "unauthenticated", "UNAUTHENTICATED"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrCapacity, mappedError{http.StatusConflict, "leagueFull", "RESOURCE_EXHAUSTED"}},
	{usecase.ErrConflict, errConflict},
	{league.ErrDuplicateJoinCode, errConflict},
	{draft.ErrPlayerAlreadyDrafted, errConflict},
	{usecase.ErrPrecondition, mappedError{http.StatusPreconditionFailed, "failedPrecondition", "FAILED_PRECONDITION"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return errInternal
}

// writeJSON encodes into a pooled buffer so a failed encode still yields a
// well-formed 500 body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		_, _ = buf.WriteString(encodeFailureBody)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError never echoes the message of an unmapped error to the client.
func writeError(_ context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := internalMessage
	if mapped != errInternal {
		message = err.Error()
	}

	writeJSON(w, mapped.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}

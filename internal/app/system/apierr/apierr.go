// internal/app/system/apierr/apierr.go
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Sentinel errors for the protocol-visible failure kinds. Stores and
// orchestrators return (or wrap) these; Write maps them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is a request-payload failure local to create/update.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

type errBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Write maps err to a protocol response. Authorization and validation
// failures come back with their own message; anything unexpected is logged
// with the request id and served as an opaque 500.
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	reqID, _ := r.Context().Value(requestIDKey).(string)

	var ve *ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusBadRequest, errBody{Error: ve.Msg, RequestID: reqID})
	case errors.As(err, &fieldErrs):
		JSON(w, http.StatusBadRequest, errBody{Error: fieldErrs.Error(), RequestID: reqID})
	case errors.Is(err, ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		JSON(w, http.StatusNotFound, errBody{Error: "not found", RequestID: reqID})
	case errors.Is(err, ErrForbidden):
		JSON(w, http.StatusForbidden, errBody{Error: "forbidden", RequestID: reqID})
	case errors.Is(err, ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, errBody{Error: "unauthorized", RequestID: reqID})
	default:
		log.Error("request failed",
			zap.String("request_id", reqID),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		JSON(w, http.StatusInternalServerError, errBody{Error: "internal error", RequestID: reqID})
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hytech-racing/car-search-webserver/internal/database/repository"
	"github.com/hytech-racing/car-search-webserver/internal/database/usecase"
	"github.com/hytech-racing/car-search-webserver/internal/logging"
	"go.uber.org/zap"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request) *HandlerError

type HandlerError struct {
	Message    string
	StatusCode int
}

func NewHandlerError(message string, code int) *HandlerError {
	return &HandlerError{
		Message:    message,
		StatusCode: code,
	}
}

// NewUseCaseError maps an error coming out of the use cases to the status code the client sees.
func NewUseCaseError(err error) *HandlerError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCar), errors.Is(err, usecase.ErrInvalidId):
		return NewHandlerError(err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrCarNotFound):
		return NewHandlerError(err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrCarExists):
		return NewHandlerError(err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrStoreUnavailable):
		return NewHandlerError(err.Error(), http.StatusServiceUnavailable)
	default:
		return NewHandlerError(err.Error(), http.StatusInternalServerError)
	}
}

// Panics propagate to the CrashRecovery middleware.
func (fn HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if handlerError := fn(w, r); handlerError != nil {
		if handlerError.StatusCode >= http.StatusInternalServerError {
			logging.FromContext(r.Context()).Error("request failed",
				zap.String("path", r.URL.Path),
				zap.Int("status", handlerError.StatusCode),
				zap.String("error", handlerError.Message),
			)
		}
		handleHTTPError(w, *handlerError)
	}
}

func handleHTTPError(w http.ResponseWriter, err HandlerError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":    make([]interface{}, 0),
		"message": err.Message,
	})
}

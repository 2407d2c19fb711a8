package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/logger"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// handleServiceError converts service error kinds to HTTP status codes
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) || svcErr.Kind == service.KindInternal {
		logger.FromContext(r.Context(), zap.L()).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, service.KindInternal.String(), "internal server error")
		return
	}

	var httpStatus int
	switch svcErr.Kind {
	case service.KindValidation:
		httpStatus = http.StatusBadRequest
	case service.KindAuth:
		httpStatus = http.StatusUnauthorized
	case service.KindForbidden:
		httpStatus = http.StatusForbidden
	case service.KindConflict:
		httpStatus = http.StatusConflict
	case service.KindNotFound:
		httpStatus = http.StatusNotFound
	}

	respondError(w, httpStatus, svcErr.Kind.String(), svcErr.Message)
}

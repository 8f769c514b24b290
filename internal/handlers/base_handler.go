package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	authMiddleware "github.com/israkkayum/lms-server-side/internal/auth/middleware"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger   *zap.Logger
	validate *validator.Validate
}

// NewBaseHandler creates a base handler with a request validator
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{Logger: logger, validate: validator.New()}
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to an HTTP status and responds.
// The mapping keys off the error sentinels the services wrap.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.Error(err))
	}
	h.RespondError(w, status, err.Error())
}

// pathInt parses an integer path parameter, responding with 400 on failure
func (h *BaseHandler) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return value, true
}

// userEmail extracts the authenticated user's email from the request context
func (h *BaseHandler) userEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return "", false
	}
	return email, true
}

// decodeAndValidate decodes a JSON request body and validates it,
// responding with 400 on failure
func (h *BaseHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dcm-project/compute-provisioner/internal/api/server"
	"github.com/dcm-project/compute-provisioner/internal/compute"
	"github.com/dcm-project/compute-provisioner/internal/service"
)

// newError creates an RFC 7807 compliant error response.
func newError(errType, title, detail string, status int) server.Error {
	return server.Error{
		Type:   errType,
		Title:  title,
		Detail: &detail,
		Status: &status,
	}
}

// handleServiceError converts a request-level service error to a problem.
func handleServiceError(err error, title string) server.Error {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case service.ErrCodeValidation:
			return newError("validation-error", "Validation failed", svcErr.Message, http.StatusBadRequest)
		case service.ErrCodeUnknownProvider:
			return newError("unknown-provider", "Provider not found", svcErr.Message, http.StatusNotFound)
		}
	}
	return newError("internal-error", title, err.Error(), http.StatusInternalServerError)
}

// toUnitError converts a slot error. Errors without a provider code are
// reported with fallbackCode.
func toUnitError(err error, fallbackCode string) *server.UnitError {
	if err == nil {
		return nil
	}
	var pErr *compute.ProviderError
	if errors.As(err, &pErr) {
		return &server.UnitError{
			Code:     pErr.Code,
			Message:  pErr.Error(),
			Provider: optional(pErr.Provider),
			Field:    optional(pErr.Field),
		}
	}
	return &server.UnitError{Code: fallbackCode, Message: err.Error()}
}

// StrictOptions reports request decoding and response encoding failures of
// the generated strict handler as problem documents.
func StrictOptions() server.StrictHTTPServerOptions {
	return server.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeProblem(w, newError("validation-error", "Invalid request", err.Error(), http.StatusBadRequest))
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeProblem(w, newError("internal-error", "Failed to write response", err.Error(), http.StatusInternalServerError))
		},
	}
}

// ParamErrorHandler reports path parameter binding failures as problems.
func ParamErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, newError("validation-error", "Invalid path parameter", err.Error(), http.StatusBadRequest))
}

func writeProblem(w http.ResponseWriter, problem server.Error) {
	status := http.StatusInternalServerError
	if problem.Status != nil {
		status = *problem.Status
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}

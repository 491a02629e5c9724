package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"merchant-review-shopify-layer/internal/domain"

	"github.com/rs/zerolog/hlog"
)

type errorResponse struct {
	Error interface{} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a service error to a status and an {"error": ...} body.
// authStatus is the status used for a missing credential: 401 on reads, 403 on mutations.
func writeError(w http.ResponseWriter, r *http.Request, err error, authStatus int) {
	status, body := classifyError(err, authStatus)

	event := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("Request failed")

	writeJSON(w, status, errorResponse{Error: body})
}

func classifyError(err error, authStatus int) (int, interface{}) {
	var validationErr *domain.ValidationError
	var authErr *domain.AuthError
	var upstreamErr *domain.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &authErr):
		return authStatus, authErr.Error()
	case errors.As(err, &upstreamErr):
		if upstreamErr.UserFacing {
			if len(upstreamErr.Errors) > 0 {
				return http.StatusBadRequest, upstreamErr.Errors
			}
			return http.StatusBadRequest, upstreamErr.Message
		}
		if upstreamErr.Message != "" {
			return http.StatusInternalServerError, upstreamErr.Message
		}
		return http.StatusInternalServerError, upstreamErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

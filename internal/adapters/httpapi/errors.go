package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"
	"github.com/rs/zerolog"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/navigation"
	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
)

// ErrorResponse is the JSON error envelope returned by every /api endpoint.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code      string                            `json:"code"`
	Message   string                            `json:"message"`
	Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
	RequestID nullable.Nullable[string]         `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	var er ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	if details != nil {
		er.Error.Details = nullable.NewNullableWithValue(details)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestID = nullable.NewNullableWithValue(rid)
	}
	writeJSON(w, status, er)
}

// writeAppError maps application errors to the JSON envelope. Anything it
// does not recognize is logged and reported as a 500.
func writeAppError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	if ae := (*session.Error)(nil); errors.As(err, &ae) {
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	if uv := (*navigation.UnknownViewError)(nil); errors.As(err, &uv) {
		writeError(w, r, http.StatusUnprocessableEntity, "UNKNOWN_VIEW", uv.Error(), map[string]any{"view": string(uv.View)})
		return
	}
	logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

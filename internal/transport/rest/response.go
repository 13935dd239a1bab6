package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/pkg/ctxutil"
)

const maxBodyBytes = 64 << 10

// errorResponse is the envelope for every failed request.
type errorResponse struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Message: message, Code: code})
}

// handleError maps service errors onto the error envelope.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *domain.ValidationError
		apiErr *domain.APIError
	)
	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Message: "Invalid input.", Code: "validation"}
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		if len(verr.Errors) == 1 {
			resp.Message = fmt.Sprintf("%s: %s", verr.Errors[0].Field, verr.Errors[0].Message)
		}
		writeJSON(w, http.StatusBadRequest, resp)

	case errors.As(err, &apiErr):
		status := apiStatus(apiErr)
		if status >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "remote api failure",
				slog.String("error", err.Error()),
				slog.Any("details", apiErr.Details),
			)
		}
		writeError(w, status, apiErr.Message, apiErr.Code)

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.", "not_found")

	case errors.Is(err, context.Canceled):
		log.DebugContext(r.Context(), "request cancelled", slog.String("path", r.URL.Path))

	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error", "internal")
	}
}

// apiStatus picks the HTTP status for an APIError. Remote failures keep
// their own status; local rejections are mapped by code.
func apiStatus(e *domain.APIError) int {
	if e.Status > 0 {
		return e.Status
	}
	switch e.Code {
	case domain.CodeInvalidDay:
		return http.StatusBadRequest
	case domain.CodeNoEntry:
		return http.StatusNotFound
	case domain.CodeChallengeOver, domain.CodeAlreadyOut, domain.CodeDayHasEntry, domain.CodeBusy:
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// decodeJSON reads a bounded JSON body into dst. An empty body leaves dst
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "malformed JSON")
	}
	return nil
}

// deviceScope returns the settings scope of the calling browser.
func deviceScope(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := ctxutil.DeviceIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing device cookie.", "no_device")
		return "", false
	}
	return id.String(), true
}

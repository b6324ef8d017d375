// Package httpapi implements spec.md §4.10's HTTP router and middleware
// chain: request-id injection, body parsing, optional/required auth, role
// guard, handler, and a uniform error shaper, wired over gorilla/mux in the
// teacher's style.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Rajeswari195/kayak/internal/apperr"
)

// authRequired is returned when an optionally-authenticated route requires
// a principal for the requested variant (e.g. GET /api/reviews?my=true).
var authRequired = apperr.Unauthorized(apperr.CodeTokenMissing, "authentication required for this request")

// writeJSON writes v as a JSON body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: failed to encode response: %v", err)
	}
}

// writeOK writes a 200 envelope wrapping data.
func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

// writeCreated writes a 201 envelope wrapping data.
func writeCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": data})
}

// writeAccepted writes a 202 whose body is just {"success":true}, used by
// the fire-and-forget clickstream endpoints which have no data to return.
func writeAccepted(w http.ResponseWriter) {
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true})
}

// writeError is the uniform error shaper spec.md §4.10 requires: any raised
// error becomes {success:false, errorCode, message} at the error's
// httpStatus, or 500 for anything that isn't a tagged *apperr.Error.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.HTTPStatus, map[string]any{
			"success":   false,
			"errorCode": appErr.Code,
			"message":   appErr.Message,
			"details":   appErr.Details,
		})
		return
	}

	log.Printf("httpapi: unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success":   false,
		"errorCode": apperr.CodeInternalError,
		"message":   "an internal error occurred",
	})
}

// decodeBody parses the JSON request body into dest, reporting a
// missing_field-flavored bad request on malformed JSON instead of leaking
// the decoder's message.
func decodeBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return apperr.BadRequest(apperr.CodeMissingField, "request body is required")
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return apperr.BadRequest(apperr.CodeMissingField, "request body is not valid JSON")
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"creativeops/internal/apperr"
	"creativeops/internal/interfaces"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONErrorResponse(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{"error": code, "message": message})
}

// writeError maps domain errors onto the JSON error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var blocked *interfaces.DeletionBlockedError
	if errors.As(err, &blocked) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      "deletion_blocked",
			"message":    blocked.Error(),
			"references": blocked.References,
		})
		return
	}

	code := apperr.CodeOf(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
	}
	msg := apperr.MessageOf(err)
	if code == apperr.CodeInternal {
		msg = "internal server error"
	}
	writeJSONErrorResponse(w, status, string(code), msg)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "invalid request body")
	}
	return nil
}

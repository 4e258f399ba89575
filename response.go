package fleettracker

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.Logf("write response: %v", err)
	}
}

func writeBytes(w http.ResponseWriter, contentType string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeQueryError answers 400 for a QueryError and 500 for anything else.
func writeQueryError(w http.ResponseWriter, err error) {
	var qe *QueryError
	if errors.As(err, &qe) {
		writeError(w, http.StatusBadRequest, qe.Msg)
		return
	}
	internal.Logf("request failed: %v", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

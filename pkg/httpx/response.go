package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteData writes a success envelope with the given payload.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// WriteOK writes a bare success envelope with no data payload.
func WriteOK(w http.ResponseWriter, status int) {
	writeJSON(w, status, envelope{Success: true})
}

// WriteMessage writes a success envelope carrying only a human-readable
// message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

// WriteError writes a failure envelope with a client-facing message.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response body", slog.Any("err", err))
	}
}

// NoCache marks a response as non-cacheable. Applied to everything that
// carries tokens or user data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

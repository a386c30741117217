package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies. The longest accepted article is 5000
// characters, so 1 MiB leaves ample room for multi-byte text and JSON escapes.
const maxBodyBytes = 1 << 20

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; the status cannot change.
		slog.Error("failed to encode response", "status", status, "error", err)
	}
}

// writeError writes a JSON error response with the given HTTP status code.
// The response body is {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// decodeBody decodes a size-limited JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

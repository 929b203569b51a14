package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status. Encoding failures are ignored at this
// point; headers are already out.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes the {"success": ..., "message": ...} envelope the SPA expects.
func Message(w http.ResponseWriter, status int, success bool, message string) {
	JSON(w, status, map[string]any{
		"success": success,
		"message": message,
	})
}

package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// writeDeclared reports a failure the dashboard shows verbatim. These go out
// with HTTP 200; the success flag carries the outcome.
func writeDeclared(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": message})
}

package utils

import (
	"encoding/json"
	"net/http"
)

// Payload is the JSON envelope for every non-binary response. Clients
// surface Message verbatim, so it carries the user-facing error text.
type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// JSONError is shorthand for a failed Payload with only a message.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, Payload{Success: false, Message: message})
}

// Package response writes the JSON bodies returned by every endpoint.
//
// Successful responses carry a human-readable message next to an
// entity-named payload:
//
//	{"message": "User added successfully", "user": {...}}
//
// Errors carry the status code and a message:
//
//	{"status": 404, "message": "User not found"}
package response

import (
	"encoding/json"
	"net/http"
)

// Map is an ordered-by-encoder JSON object.
type Map = map[string]interface{}

type errorBody struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Payload writes {"message": message, key: data}.
func Payload(w http.ResponseWriter, status int, message, key string, data interface{}) {
	JSON(w, status, Map{"message": message, key: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Status: status, Message: message})
}

// FieldErrors sends a 400 whose message is the first failure, with every
// field failure listed under "errors".
func FieldErrors(w http.ResponseWriter, message string, errs map[string]string) {
	JSON(w, http.StatusBadRequest, errorBody{Status: http.StatusBadRequest, Message: message, Errors: errs})
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

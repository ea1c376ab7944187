package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// response is the JSON envelope shared by every API endpoint.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Exists  *bool  `json:"exists,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, response{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, response{Success: false, Error: message})
}

// respondInternal hides storage details behind a generic message and logs the
// cause at the boundary.
func respondInternal(w http.ResponseWriter, err error) {
	slog.Error("internal error", "error", err)
	respondError(w, http.StatusInternalServerError, "something went wrong, please try again later")
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

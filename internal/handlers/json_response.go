package handlers

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONErrorResponse(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, map[string]any{"error": code, "message": message})
}

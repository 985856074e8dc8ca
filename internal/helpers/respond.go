package helpers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorResponse struct {
	Errors []string `json:"errors"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("Failed to marshal response", zap.Error(err))
		RespondWithError(w, 500, []string{"INTERNAL_SERVER_ERROR"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func RespondWithError(w http.ResponseWriter, status int, codes []string) {
	body, _ := json.Marshal(errorResponse{Errors: codes})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

package models

type HealthResponse struct {
	Status string `json:"status"`
}

package dto

import "time"

// HealthResponse represents the health of the API
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// UploadResponse represents a file stored through the upload relay
type UploadResponse struct {
	CID         string `json:"cid"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	GatewayURL  string `json:"gateway_url"`
}

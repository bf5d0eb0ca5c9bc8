package api

import "time"

// TranscribeResponse is returned when recognition succeeds
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
	Success    bool   `json:"success"`
}

// ErrorResponse is returned when a request is invalid or the provider
// rejects it
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// HealthResponse reports liveness and client initialization state
type HealthResponse struct {
	Status                   string `json:"status"`
	SpeechClientInitialized  bool   `json:"speech_client_initialized"`
	StorageClientInitialized bool   `json:"storage_client_initialized"`
	Mode                     string `json:"mode,omitempty"`
}

// TokenRequest represents the request payload for token issuance
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse represents the response payload for token issuance
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

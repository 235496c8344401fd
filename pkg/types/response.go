package types

// SuccessEnvelope is the wire shape for every successful API response.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope is the wire shape for every failed API response. Err carries
// the underlying cause text and is only populated for unexpected failures.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

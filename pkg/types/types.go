package types

// ErrorBody is the JSON envelope for every non-2xx response.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageBody wraps plain acknowledgement responses.
type MessageBody struct {
	Message string `json:"message"`
}

// SuccessBody is returned by delete endpoints.
type SuccessBody struct {
	Success bool `json:"success"`
}

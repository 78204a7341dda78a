package transport

// ErrorResponse is the wire shape of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse acknowledges operations with no entity to return.
type MessageResponse struct {
	Message string `json:"message"`
}

package response

// Resp is the uniform JSON envelope returned by every HTTP endpoint.
// Code mirrors the HTTP status: 200 for success, 201 for creation.
type Resp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

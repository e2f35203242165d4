package response

// Envelope messages.
const (
	MessageSuccess      = "success"
	MessageCreated      = "created"
	MessageBadRequest   = "bad request"
	MessageUnauthorized = "unauthorized"
	MessageForbidden    = "forbidden"
	MessageInternal     = "internal server error"
)

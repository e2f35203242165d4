package event

import "errors"

// ErrInvalidFrame indicates a frame missing its type discriminator or a
// payload that does not match the frame type.
var ErrInvalidFrame = errors.New("invalid frame")

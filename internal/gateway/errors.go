// internal/gateway/errors.go
package gateway

import "errors"

// NetworkErrorMessage is shown to the user when a request never got a
// response from the remote service.
const NetworkErrorMessage = "Network error. Please try again."

// AuthError is a failed login or signup exchange. Reason is the
// user-facing message: the server-provided error, a validation failure,
// or the network default.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// GenerationError is a rejected or failed poster-generation request.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// ErrNoResult means the generation request succeeded but the response
// carried no asset reference. Callers distinguish this from a failed
// request; it is not a hard failure.
var ErrNoResult = errors.New("no image returned")

package callreport

import "errors"

var (
	// ErrInvalidPayload means the webhook body is not a JSON object (or its envelope is broken).
	ErrInvalidPayload = errors.New("Invalid payload")
	// ErrMissingCallID means no usable call identifier was found in any known location.
	ErrMissingCallID = errors.New("Missing or invalid call identifier")
	// ErrProcessing hides every other failure from the webhook sender.
	ErrProcessing = errors.New("Failed to process webhook")
)

// IsValidation reports whether err should be answered as a client error.
// Processing failures belong to the same class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrMissingCallID) ||
		errors.Is(err, ErrProcessing)
}

// PublicMessage maps err to the message that may be returned to the sender.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPayload):
		return ErrInvalidPayload.Error()
	case errors.Is(err, ErrMissingCallID):
		return ErrMissingCallID.Error()
	default:
		return ErrProcessing.Error()
	}
}

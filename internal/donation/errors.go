package donation

import (
	"errors"

	"github.com/gywan/gywan-site/internal/validation"
)

// Kind classifies why a donation could not be processed.
type Kind string

const (
	KindInvalidRequest      Kind = "invalid_request"
	KindPaymentRejected     Kind = "payment_rejected"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindStorageFailed       Kind = "storage_failed"
)

// Error is returned by Process and Pledge.
type Error struct {
	Kind Kind
	// Msg is safe to show to the donor.
	Msg string
	// Fields holds per-field messages for KindInvalidRequest.
	Fields validation.Errors
	Err    error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// merge adds the field errors of err to fields.
func merge(fields validation.Errors, err error) validation.Errors {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return fields
	}

	if fields == nil {
		fields = validation.Errors{}
	}

	for f, msgs := range verrs {
		fields[f] = append(fields[f], msgs...)
	}

	return fields
}

func invalid(msg string, fields validation.Errors) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: msg, Fields: fields, Err: fields}
}

// MalformedRequest reports a request body that could not be decoded.
func MalformedRequest(err error) *Error {
	failuresTotal.WithLabelValues(string(KindInvalidRequest)).Inc()

	return &Error{Kind: KindInvalidRequest, Msg: "Invalid request body.", Err: err}
}

// Package payment creates payment intents at the payment provider.
package payment

import (
	"context"
	"errors"
)

var (
	// ErrRejected is returned when the provider refused the request, e.g. a declined card or bad parameters.
	ErrRejected = errors.New("payment rejected by provider")
	// ErrUnavailable is returned when the provider could not be reached or failed internally.
	ErrUnavailable = errors.New("payment provider unavailable")
)

// IntentRequest describes the payment intent to create.
type IntentRequest struct {
	// AmountMinor is the amount in the smallest currency unit.
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// Intent is a created payment intent.
type Intent struct {
	ID           string
	ClientSecret string
}

// Provider creates payment intents.
// Errors wrap ErrRejected or ErrUnavailable.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Stripe is a Provider backed by the Stripe API.
type Stripe struct {
	client  paymentintent.Client
	timeout time.Duration
}

// StripeOption customizes the Stripe provider.
type StripeOption func(*stripe.BackendConfig)

// WithBackendURL points the client at another API endpoint, e.g. stripe-mock.
func WithBackendURL(url string) StripeOption {
	return func(c *stripe.BackendConfig) {
		c.URL = stripe.String(url)
	}
}

// NewStripe creates a Stripe provider. Each CreateIntent call is bounded by timeout.
// Network retries are disabled; a failed call is reported to the donor instead.
func NewStripe(secretKey string, timeout time.Duration, opts ...StripeOption) *Stripe {
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		LeveledLogger:     zerologLeveled{},
		MaxNetworkRetries: stripe.Int64(0),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Stripe{
		client: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Key: secretKey,
		},
		timeout: timeout,
	}
}

// CreateIntent creates a PaymentIntent with automatic payment methods.
func (s *Stripe) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.client.New(params)
	if err != nil {
		return nil, classify(err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// transientCodes are stripe error codes for requests that may succeed when repeated.
var transientCodes = map[stripe.ErrorCode]bool{
	"rate_limit":   true,
	"lock_timeout": true,
}

// classify maps a stripe-go error onto ErrRejected or ErrUnavailable.
// Server errors, throttling and lock timeouts count as unavailable.
func classify(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError ||
			stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
			transientCodes[stripeErr.Code] {
			return fmt.Errorf("%w: %s", ErrUnavailable, stripeErr.Msg)
		}

		return &RejectedError{Code: string(stripeErr.Code), Msg: stripeErr.Msg}
	}

	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// RejectedError carries the provider's message for a rejected request.
type RejectedError struct {
	Code string
	Msg  string
}

func (e *RejectedError) Error() string {
	if e.Msg == "" {
		return ErrRejected.Error()
	}

	return e.Msg
}

// Is matches ErrRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// zerologLeveled routes stripe-go's log output into the global zerolog logger.
type zerologLeveled struct{}

func (zerologLeveled) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "stripe").Msgf(format, v...)
}

func (zerologLeveled) Infof(format string, v ...interface{}) {
	log.Debug().Str("component", "stripe").Msgf(format, v...)
}

func (zerologLeveled) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "stripe").Msgf(format, v...)
}

func (zerologLeveled) Errorf(format string, v ...interface{}) {
	log.Error().Str("component", "stripe").Msgf(format, v...)
}

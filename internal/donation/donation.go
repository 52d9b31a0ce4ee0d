// Package donation turns donation requests into payment intents and local records.
package donation

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	controller "github.com/gywan/gywan-site/internal/db/controller/donation"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/payment"
	"github.com/gywan/gywan-site/internal/validation"
)

// Request is the JSON body posted by the donation page.
type Request struct {
	Amount       decimal.Decimal `json:"amount"`
	DonationType string          `json:"donation_type" validate:"required,oneof=one_time monthly"`
	DonorName    string          `json:"donor_name"    validate:"required,max=100"`
	DonorEmail   string          `json:"donor_email"   validate:"required,email,max=254"`
	Message      string          `json:"message"       validate:"max=1000"`
	IsAnonymous  bool            `json:"is_anonymous"`
}

// Result is returned to the browser to confirm the payment client side.
type Result struct {
	ClientSecret    string
	PaymentIntentID string
	DonationID      uint64
}

// Pipeline processes donations. It is safe for concurrent use.
type Pipeline struct {
	db       *gorm.DB
	provider payment.Provider
	currency string
}

// New creates a pipeline charging in currency.
func New(db *gorm.DB, provider payment.Provider, currency string) *Pipeline {
	return &Pipeline{db: db, provider: provider, currency: strings.ToLower(currency)}
}

// Process validates req, creates a payment intent and records the donation.
// A recorded donation only means an intent exists; capture happens in the browser.
// Failures are returned as *Error.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	res, err := p.process(ctx, req)
	if err != nil {
		var derr *Error
		if errors.As(err, &derr) {
			failuresTotal.WithLabelValues(string(derr.Kind)).Inc()
		}

		return nil, err
	}

	donationsTotal.WithLabelValues(req.DonationType, string(models.PaymentCard)).Inc()

	return res, nil
}

func (p *Pipeline) process(ctx context.Context, req Request) (*Result, error) {
	req.DonorName = strings.TrimSpace(req.DonorName)
	req.DonorEmail = strings.TrimSpace(req.DonorEmail)
	req.Message = strings.TrimSpace(req.Message)

	fields := merge(validation.Validator.Check(req), CheckAmount(req.Amount))
	if len(fields) > 0 {
		return nil, invalid("Invalid donation: "+fields.Error(), fields)
	}

	minor := ToMinor(req.Amount)

	intent, err := p.provider.CreateIntent(ctx, payment.IntentRequest{
		AmountMinor: minor,
		Currency:    p.currency,
		Metadata: map[string]string{
			"donor_name":    req.DonorName,
			"donor_email":   req.DonorEmail,
			"donation_type": req.DonationType,
		},
	})
	if err != nil {
		log.Warn().Err(err).
			Int64("amount_minor", minor).
			Str("donation_type", req.DonationType).
			Msg("payment intent creation failed")

		if errors.Is(err, payment.ErrRejected) {
			return nil, &Error{Kind: KindPaymentRejected, Msg: err.Error(), Err: err}
		}

		return nil, &Error{
			Kind: KindProviderUnavailable,
			Msg:  "The payment service is currently unavailable. Please try again later.",
			Err:  err,
		}
	}

	d := &models.Donation{
		Amount:          req.Amount,
		AmountMinor:     minor,
		Currency:        p.currency,
		DonorName:       req.DonorName,
		DonorEmail:      req.DonorEmail,
		DonationType:    models.DonationType(req.DonationType),
		PaymentMethod:   models.PaymentCard,
		Status:          models.DonationIntentCreated,
		IsAnonymous:     req.IsAnonymous,
		Message:         req.Message,
		PaymentIntentID: intent.ID,
	}

	if err := controller.Create(p.db, d); err != nil {
		// the intent stays open at the provider without a local record
		log.Error().Err(err).
			Str("payment_intent_id", intent.ID).
			Int64("amount_minor", minor).
			Msg("failed to record donation")

		return nil, &Error{Kind: KindStorageFailed, Msg: "Your donation could not be recorded. Please try again.", Err: err}
	}

	log.Info().
		Uint64("donation_id", d.ID).
		Str("payment_intent_id", intent.ID).
		Int64("amount_minor", minor).
		Str("donation_type", req.DonationType).
		Msg("donation intent created")

	return &Result{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID, DonationID: d.ID}, nil
}

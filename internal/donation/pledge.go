package donation

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	controller "github.com/gywan/gywan-site/internal/db/controller/donation"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/validation"
)

// PledgeForm is an offline donation paid by mobile money or bank transfer.
type PledgeForm struct {
	Amount           string `form:"amount"          validate:"required"`
	DonorName        string `form:"donor_name"      validate:"required,max=100"`
	DonorEmail       string `form:"donor_email"     validate:"required,email,max=254"`
	PaymentMethod    string `form:"payment_method"  validate:"required,oneof=mobile_money bank_transfer"`
	Frequency        string `form:"frequency"       validate:"required,oneof=one_time monthly"`
	MobileProviderID uint64 `form:"mobile_provider" validate:"required_if=PaymentMethod mobile_money"`
	MobileNumber     string `form:"mobile_number"   validate:"required_if=PaymentMethod mobile_money,max=20"`
	BankID           uint64 `form:"bank_name"       validate:"required_if=PaymentMethod bank_transfer"`
	IsAnonymous      bool   `form:"is_anonymous"`
	Message          string `form:"message"         validate:"max=1000"`
}

// Pledge records an offline donation without contacting the payment provider.
func (p *Pipeline) Pledge(_ context.Context, form PledgeForm) (*models.Donation, error) {
	d, err := p.pledge(form)
	if err != nil {
		var derr *Error
		if errors.As(err, &derr) {
			failuresTotal.WithLabelValues(string(derr.Kind)).Inc()
		}

		return nil, err
	}

	donationsTotal.WithLabelValues(string(d.DonationType), string(d.PaymentMethod)).Inc()

	return d, nil
}

func (p *Pipeline) pledge(form PledgeForm) (*models.Donation, error) {
	form.DonorName = strings.TrimSpace(form.DonorName)
	form.DonorEmail = strings.TrimSpace(form.DonorEmail)
	form.MobileNumber = strings.TrimSpace(form.MobileNumber)
	form.Message = strings.TrimSpace(form.Message)

	fields := validation.Validator.Check(form)

	amount, err := ParseAmount(form.Amount)
	if form.Amount != "" {
		fields = merge(fields, err)
	}

	if fields == nil {
		fields = validation.Errors{}
	}

	d := &models.Donation{
		Amount:        amount,
		AmountMinor:   ToMinor(amount),
		Currency:      p.currency,
		DonorName:     form.DonorName,
		DonorEmail:    form.DonorEmail,
		DonationType:  models.DonationType(form.Frequency),
		PaymentMethod: models.PaymentMethod(form.PaymentMethod),
		Status:        models.DonationPledged,
		IsAnonymous:   form.IsAnonymous,
		Message:       form.Message,
	}

	switch d.PaymentMethod {
	case models.PaymentMobileMoney:
		if form.MobileProviderID != 0 {
			if _, err := controller.ActiveMobileProvider(p.db, form.MobileProviderID); err != nil {
				fields.Add("mobile_provider", "Select a valid choice.")
			}
		}

		d.MobileProviderID = &form.MobileProviderID
		d.MobileNumber = form.MobileNumber
	case models.PaymentBankTransfer:
		if form.BankID != 0 {
			if _, err := controller.ActiveBank(p.db, form.BankID); err != nil {
				fields.Add("bank_name", "Select a valid choice.")
			}
		}

		d.BankID = &form.BankID
	}

	if len(fields) > 0 {
		return nil, invalid("Please correct the errors below.", fields)
	}

	if err := controller.Create(p.db, d); err != nil {
		log.Error().Err(err).Str("payment_method", form.PaymentMethod).Msg("failed to record pledge")

		return nil, &Error{Kind: KindStorageFailed, Msg: "Your pledge could not be recorded. Please try again.", Err: err}
	}

	log.Info().
		Uint64("donation_id", d.ID).
		Str("payment_method", form.PaymentMethod).
		Int64("amount_minor", d.AmountMinor).
		Msg("pledge recorded")

	return d, nil
}

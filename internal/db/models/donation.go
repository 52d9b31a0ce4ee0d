package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationType is the frequency of a donation.
type DonationType string

const (
	DonationOneTime DonationType = "one_time"
	DonationMonthly DonationType = "monthly"
)

// PaymentMethod is how the donor intends to pay.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// DonationStatus tracks how far a donation got.
type DonationStatus string

const (
	// DonationIntentCreated means a payment intent exists at the provider. It
	// says nothing about whether the payment was captured.
	DonationIntentCreated DonationStatus = "intent_created"
	// DonationPledged is an offline pledge recorded without a provider call.
	DonationPledged DonationStatus = "pledged"
)

// Donation is a local record of a donation attempt.
type Donation struct {
	ID uint64 `gorm:"primaryKey"`
	// Amount in major currency units.
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// AmountMinor is Amount in the smallest currency unit as sent to the provider.
	AmountMinor   int64          `gorm:"not null"`
	Currency      string         `gorm:"size:3;not null"`
	DonorName     string         `gorm:"size:100;not null"`
	DonorEmail    string         `gorm:"size:254;not null"`
	DonationType  DonationType   `gorm:"type:varchar(20);not null"`
	PaymentMethod PaymentMethod  `gorm:"type:varchar(20);not null;default:'card'"`
	Status        DonationStatus `gorm:"type:varchar(20);index;not null"`

	MobileProviderID *uint64
	MobileProvider   *MobileProvider `gorm:"constraint:OnDelete:SET NULL"`
	BankID           *uint64
	Bank             *Bank  `gorm:"constraint:OnDelete:SET NULL"`
	MobileNumber     string `gorm:"size:20"`

	IsAnonymous     bool
	Message         string `gorm:"type:text"`
	PaymentIntentID string `gorm:"size:255;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName hides the donor's name for anonymous donations.
func (d *Donation) DisplayName() string {
	if d.IsAnonymous {
		return "Anonymous"
	}

	return d.DonorName
}

// MobileProvider is a mobile money operator offered on the pledge form.
type MobileProvider struct {
	ID       uint64 `gorm:"primaryKey"`
	Name     string `gorm:"size:100;uniqueIndex;not null"`
	IsActive bool   `gorm:"not null"`
}

// Bank is a bank offered for transfer pledges.
type Bank struct {
	ID       uint64 `gorm:"primaryKey"`
	Name     string `gorm:"size:100;uniqueIndex;not null"`
	IsActive bool   `gorm:"not null"`
}

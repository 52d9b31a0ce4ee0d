package donation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
)

func TestCreateAndGetByPaymentIntent(t *testing.T) {
	db := testdb.New(t)

	d := &models.Donation{
		Amount:          decimal.RequireFromString("25.50"),
		AmountMinor:     2550,
		Currency:        "usd",
		DonorName:       "Mariama",
		DonorEmail:      "m@example.org",
		DonationType:    models.DonationMonthly,
		PaymentMethod:   models.PaymentCard,
		Status:          models.DonationIntentCreated,
		PaymentIntentID: "pi_123",
	}
	require.NoError(t, Create(db, d))

	got, err := GetByPaymentIntent(db, "pi_123")
	require.NoError(t, err)

	assert.Equal(t, d.ID, got.ID)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("25.5")), "amount %s", got.Amount)
	assert.EqualValues(t, 2550, got.AmountMinor)
	assert.Equal(t, models.DonationMonthly, got.DonationType)

	_, err = GetByPaymentIntent(db, "pi_missing")
	require.ErrorIs(t, err, ErrDonationNotFound)

	_, err = GetByPaymentIntent(db, "")
	require.ErrorIs(t, err, ErrDonationNotFound)

	n, err := Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRecentPreloadsChoices(t *testing.T) {
	db := testdb.New(t)

	provider := models.MobileProvider{Name: "Orange Money", IsActive: true}
	require.NoError(t, db.Create(&provider).Error)

	require.NoError(t, Create(db, &models.Donation{
		Amount: decimal.NewFromInt(10), AmountMinor: 1000, Currency: "usd",
		DonorName: "a", DonorEmail: "a@example.org",
		DonationType: models.DonationOneTime, PaymentMethod: models.PaymentMobileMoney,
		Status: models.DonationPledged, MobileProviderID: &provider.ID, MobileNumber: "+23276000000",
	}))

	out, err := Recent(db, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].MobileProvider)
	assert.Equal(t, "Orange Money", out[0].MobileProvider.Name)
	assert.Nil(t, out[0].Bank)
}

func TestActiveChoices(t *testing.T) {
	db := testdb.New(t)

	on := models.Bank{Name: "Rokel", IsActive: true}
	off := models.Bank{Name: "Closed", IsActive: false}
	require.NoError(t, db.Create(&on).Error)
	require.NoError(t, db.Create(&off).Error)

	got, err := ActiveBank(db, on.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rokel", got.Name)

	_, err = ActiveBank(db, off.ID)
	require.ErrorIs(t, err, ErrUnknownProvider)

	_, err = ActiveMobileProvider(db, 99)
	require.ErrorIs(t, err, ErrUnknownProvider)
}

package donate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
	"github.com/gywan/gywan-site/internal/donation"
	"github.com/gywan/gywan-site/internal/payment"
	"github.com/gywan/gywan-site/internal/validation"
	"github.com/gywan/gywan-site/internal/web/session"
)

type fakeProvider struct {
	mu  sync.Mutex
	n   int
	err error
}

func (f *fakeProvider) CreateIntent(_ context.Context, _ payment.IntentRequest) (*payment.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	f.n++
	id := fmt.Sprintf("pi_%d", f.n)

	return &payment.Intent{ID: id, ClientSecret: id + "_secret"}, nil
}

type captureViews struct {
	name string
	data fiber.Map
}

func (*captureViews) Load() error { return nil }

func (v *captureViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.name = name
	v.data, _ = data.(fiber.Map)
	_, err := io.WriteString(w, name)

	return err
}

type processResponse struct {
	Success      bool                `json:"success"`
	ClientSecret string              `json:"client_secret"`
	DonationID   uint64              `json:"donation_id"`
	Error        string              `json:"error"`
	ErrorKind    string              `json:"error_kind"`
	Errors       map[string][]string `json:"errors"`
}

func setup(t *testing.T, provider payment.Provider) (*fiber.App, *gorm.DB, *captureViews) {
	t.Helper()

	session.Init(nil, time.Hour)

	db := testdb.New(t)
	views := &captureViews{}
	app := fiber.New(fiber.Config{Views: views})

	cfg := &config.Config{Stripe: config.Stripe{PublicKey: "pk_test_1", Currency: "usd"}}

	var s Service
	s.Init(app, cfg, db, donation.New(db, provider, cfg.Stripe.Currency))

	return app, db, views
}

func process(t *testing.T, app *fiber.App, path, body string) (int, processResponse) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	var out processResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return resp.StatusCode, out
}

const validBody = `{"amount":"25.50","donation_type":"one_time","donor_name":"Aisha","donor_email":"aisha@example.org"}`

func TestProcess_Success(t *testing.T) {
	app, db, _ := setup(t, &fakeProvider{})

	for _, path := range []string{ProcessPath, LegacyProcessPath} {
		status, out := process(t, app, path, validBody)
		assert.Equal(t, fiber.StatusOK, status)
		assert.True(t, out.Success)
		assert.NotEmpty(t, out.ClientSecret)
		assert.NotZero(t, out.DonationID)
	}

	var d models.Donation
	require.NoError(t, db.First(&d).Error)
	assert.EqualValues(t, 2550, d.AmountMinor)
	assert.Equal(t, models.DonationIntentCreated, d.Status)
}

func TestProcess_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		body     string
		wantKind donation.Kind
	}{
		{
			name:     "malformed json",
			provider: &fakeProvider{},
			body:     `{"amount":`,
			wantKind: donation.KindInvalidRequest,
		},
		{
			name:     "negative amount",
			provider: &fakeProvider{},
			body:     `{"amount":"-5","donation_type":"one_time","donor_name":"A","donor_email":"a@example.org"}`,
			wantKind: donation.KindInvalidRequest,
		},
		{
			name:     "card declined",
			provider: &fakeProvider{err: fmt.Errorf("card declined: %w", payment.ErrRejected)},
			body:     validBody,
			wantKind: donation.KindPaymentRejected,
		},
		{
			name:     "provider down",
			provider: &fakeProvider{err: fmt.Errorf("dial: %w", payment.ErrUnavailable)},
			body:     validBody,
			wantKind: donation.KindProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, db, _ := setup(t, tt.provider)

			status, out := process(t, app, ProcessPath, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.False(t, out.Success)
			assert.Equal(t, string(tt.wantKind), out.ErrorKind)
			assert.NotEmpty(t, out.Error)

			var n int64
			require.NoError(t, db.Model(&models.Donation{}).Count(&n).Error)
			assert.Zero(t, n)
		})
	}
}

func TestProcess_FieldErrors(t *testing.T) {
	app, _, _ := setup(t, &fakeProvider{})

	_, out := process(t, app, ProcessPath, `{"amount":"10","donation_type":"weekly"}`)
	assert.Equal(t, string(donation.KindInvalidRequest), out.ErrorKind)
	assert.Contains(t, out.Errors, "donation_type")
	assert.Contains(t, out.Errors, "donor_name")
	assert.Contains(t, out.Errors, "donor_email")
}

func postPledge(t *testing.T, app *fiber.App, form url.Values) *httptestResponse {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, PledgePath, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	return &httptestResponse{status: resp.StatusCode, location: resp.Header.Get(fiber.HeaderLocation)}
}

type httptestResponse struct {
	status   int
	location string
}

func TestPledge(t *testing.T) {
	app, db, views := setup(t, &fakeProvider{})

	provider := models.MobileProvider{Name: "Orange Money", IsActive: true}
	require.NoError(t, db.Create(&provider).Error)

	resp := postPledge(t, app, url.Values{
		"amount":          {"100"},
		"donor_name":      {"Mariama"},
		"donor_email":     {"m@example.org"},
		"payment_method":  {"mobile_money"},
		"frequency":       {"monthly"},
		"mobile_provider": {fmt.Sprint(provider.ID)},
		"mobile_number":   {"+23276000000"},
	})
	assert.Equal(t, fiber.StatusFound, resp.status)
	assert.Equal(t, ThankYouPath, resp.location)

	var d models.Donation
	require.NoError(t, db.First(&d).Error)
	assert.Equal(t, models.DonationPledged, d.Status)
	assert.Empty(t, d.PaymentIntentID)

	resp = postPledge(t, app, url.Values{
		"amount":         {"100"},
		"donor_name":     {"Mariama"},
		"donor_email":    {"m@example.org"},
		"payment_method": {"bank_transfer"},
		"frequency":      {"monthly"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.status)
	assert.Equal(t, TemplateName, views.name)

	errs, ok := views.data["Errors"].(validation.Errors)
	require.True(t, ok)
	assert.NotEmpty(t, errs.First("bank_name"))
}

func TestGetAndThankYou(t *testing.T) {
	app, db, views := setup(t, &fakeProvider{})

	require.NoError(t, db.Create(&models.ImpactStory{Title: "Story", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.ImpactStory{Title: "Hidden"}).Error)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, TemplateName, views.name)
	assert.Equal(t, "pk_test_1", views.data["StripePublicKey"])
	assert.Len(t, views.data["ImpactStories"], 1)

	_, out := process(t, app, ProcessPath, validBody)
	require.True(t, out.Success)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, ThankYouPath+"?payment_intent=pi_1", nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, ThankYouTemplate, views.name)

	d, ok := views.data["Donation"].(*models.Donation)
	require.True(t, ok)
	assert.Equal(t, "Aisha", d.DonorName)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, ThankYouPath+"?payment_intent=pi_unknown", nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, views.data, "Donation")
}

package content

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
	"github.com/gywan/gywan-site/internal/web/session"
)

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

func setup(t *testing.T) (*fiber.App, *gorm.DB, *captureViews) {
	t.Helper()

	session.Init(nil, time.Hour)

	db := testdb.New(t)
	views := &captureViews{}
	app := fiber.New(fiber.Config{Views: views})

	s := &Section[models.Event]{
		Kind:      catalog.KindEvent,
		Title:     "Events",
		ItemTitle: func(e *models.Event) string { return e.Title },
		List:      catalog.ListEvents,
		Get:       catalog.GetEvent,
		DetailExtras: func(_ *fiber.Ctx, _ *gorm.DB, e *models.Event, data fiber.Map) error {
			data["Upper"] = strings.ToUpper(e.Title)
			return nil
		},
	}
	s.Register(app, db)

	future := time.Now().Add(48 * time.Hour)
	require.NoError(t, db.Create(&[]models.Event{
		{Title: "Leadership Summit", Location: "Freetown", Date: future, IsActive: true},
		{Title: "Mentorship Day", Location: "Bo", Date: future.Add(time.Hour), IsActive: true},
		{Title: "Cancelled", Date: future, IsActive: false},
	}).Error)

	return app, db, views
}

func get(t *testing.T, app *fiber.App, path string) int {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)

	_ = resp.Body.Close()

	return resp.StatusCode
}

func post(t *testing.T, app *fiber.App, path string, form url.Values) (int, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	_ = resp.Body.Close()

	return resp.StatusCode, resp.Header.Get(fiber.HeaderLocation)
}

func TestListPage(t *testing.T) {
	app, _, views := setup(t)

	require.Equal(t, fiber.StatusOK, get(t, app, "/events"))
	assert.Equal(t, "events/list", views.name)
	assert.Equal(t, "/events", views.data["BasePath"])

	items, ok := views.data["Items"].([]models.Event)
	require.True(t, ok)
	assert.Len(t, items, 2)

	require.Equal(t, fiber.StatusOK, get(t, app, "/events?q=freetown"))

	items, ok = views.data["Items"].([]models.Event)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Leadership Summit", items[0].Title)
}

func TestDetailPage(t *testing.T) {
	app, _, views := setup(t)

	require.Equal(t, fiber.StatusOK, get(t, app, "/events/1"))
	assert.Equal(t, "events/detail", views.name)
	assert.Equal(t, "LEADERSHIP SUMMIT", views.data["Upper"])

	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/events/3"), "hidden item")
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/events/42"))
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/events/abc"))
}

func TestPostSectionComment(t *testing.T) {
	app, db, _ := setup(t)

	status, location := post(t, app, "/events", url.Values{"comment": {"Great work!"}})
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/events", location)

	var c models.Comment
	require.NoError(t, db.First(&c).Error)
	assert.Equal(t, models.CommentTargetEvent, c.TargetType)
	assert.Zero(t, c.TargetID)
	assert.Equal(t, "Great work!", c.Text)
}

func TestPostItemComment(t *testing.T) {
	app, db, _ := setup(t)

	status, location := post(t, app, "/events/2", url.Values{
		"comment": {"See you there"},
		"name":    {"Fatmata"},
		"email":   {"fatmata@example.org"},
	})
	assert.Equal(t, fiber.StatusFound, status)
	assert.Equal(t, "/events/2", location)

	var c models.Comment
	require.NoError(t, db.First(&c).Error)
	assert.EqualValues(t, 2, c.TargetID)
	assert.Equal(t, "Fatmata", c.Name)
}

func TestPostItemComment_Rejected(t *testing.T) {
	app, db, _ := setup(t)

	valid := url.Values{"comment": {"Hi"}, "name": {"A"}, "email": {"a@example.org"}}

	status, _ := post(t, app, "/events/3", valid)
	assert.Equal(t, fiber.StatusNotFound, status, "hidden target")

	status, _ = post(t, app, "/events/42", valid)
	assert.Equal(t, fiber.StatusNotFound, status, "missing target")

	status, location := post(t, app, "/events/1", url.Values{"comment": {"Hi"}, "email": {"not-an-email"}})
	assert.Equal(t, fiber.StatusFound, status, "validation errors are flashed")
	assert.Equal(t, "/events/1", location)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

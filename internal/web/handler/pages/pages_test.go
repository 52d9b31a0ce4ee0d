package pages

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
)

type captureViews struct {
	data fiber.Map
}

func (*captureViews) Load() error { return nil }

func (v *captureViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.data, _ = data.(fiber.Map)
	_, err := io.WriteString(w, name)

	return err
}

func TestPages(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.Create(&models.TeamMember{Name: "Aminata", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.TeamMember{Name: "Former", IsActive: false}).Error)
	require.NoError(t, db.Create(&models.Supporter{Name: "Foundation", IsActive: true}).Error)

	views := &captureViews{}
	app := fiber.New(fiber.Config{Views: views})

	var s Service
	s.Init(app, &config.Config{}, db)

	tests := []struct {
		path       string
		template   string
		supporters int
	}{
		{path: AboutPath, template: AboutTemplate},
		{path: TeamPath, template: TeamTemplate, supporters: 1},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.template, string(body))

			members, _ := views.data["TeamMembers"].([]models.TeamMember)
			require.Len(t, members, 1)
			assert.Equal(t, "Aminata", members[0].Name)

			supporters, _ := views.data["Supporters"].([]models.Supporter)
			assert.Len(t, supporters, tt.supporters)
		})
	}
}

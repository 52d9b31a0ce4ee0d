package blog

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
)

type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, err := io.WriteString(w, name)

	return err
}

func TestFeed(t *testing.T) {
	db := testdb.New(t)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]models.BlogPost{
		{Title: "Older", Summary: "first", Published: true, IsActive: true, CreatedAt: now.Add(-time.Hour)},
		{Title: "Newest", Summary: "second", Published: true, IsActive: true, CreatedAt: now},
		{Title: "Draft", Published: false, IsActive: true, CreatedAt: now},
		{Title: "Hidden", Published: true, IsActive: false, CreatedAt: now},
	}).Error)

	app := fiber.New(fiber.Config{Views: noOpViews{}})
	Init(app, &config.Config{Title: "Gywan", Webserver: config.Webserver{URL: "https://gywan.example/"}}, db)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, FeedPath, nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/rss+xml")

	feed, err := gofeed.NewParser().Parse(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "Gywan Blog", feed.Title)
	assert.Equal(t, "https://gywan.example/blog", feed.Link)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Newest", feed.Items[0].Title)
	assert.Equal(t, "Older", feed.Items[1].Title)
	assert.Contains(t, feed.Items[0].Link, "https://gywan.example/blog/")
}

func TestBuild_EmptyFeed(t *testing.T) {
	feed := Build("Gywan", "http://localhost:8080", nil)

	assert.Empty(t, feed.Items)
	assert.False(t, feed.Created.IsZero())

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Gywan Blog</title>")
}

func TestDetail_DraftIsNotFound(t *testing.T) {
	db := testdb.New(t)

	draft := models.BlogPost{Title: "Draft", Published: false, IsActive: true}
	require.NoError(t, db.Create(&draft).Error)

	app := fiber.New(fiber.Config{Views: noOpViews{}})
	Init(app, &config.Config{Title: "Gywan", Webserver: config.Webserver{URL: "http://localhost"}}, db)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/blog/1", nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Events", "events", "list")

	assert.Equal(t, "Events", ctx.PageTitle)
	assert.Equal(t, "events", ctx.ActiveSection)
	assert.Equal(t, "list", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
	assert.False(t, ctx.HasBreadcrumbs())
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Spring Gathering", "events", "detail").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Events", "/events", false).
		AddBreadcrumb("Spring Gathering", "/events/3", true)

	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/events", ctx.Breadcrumbs[1].URL)
	assert.False(t, ctx.Breadcrumbs[1].Active)
	assert.True(t, ctx.Breadcrumbs[2].Active)
	assert.True(t, ctx.HasBreadcrumbs())
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Blog", "blog", "list")

	assert.True(t, ctx.IsActive("blog", "list"))
	assert.False(t, ctx.IsActive("events", "list"))
	assert.False(t, ctx.IsActive("blog", "detail"))
	assert.True(t, ctx.IsSectionActive("blog"))
	assert.False(t, ctx.IsSectionActive("donate"))
}

func TestMenu_SectionsAreUnique(t *testing.T) {
	seen := make(map[string]bool)

	for _, item := range NewContext("Home", "home", "index").Menu() {
		assert.False(t, seen[item.Section], item.Section)
		assert.NotEmpty(t, item.URL)
		seen[item.Section] = true
	}
}

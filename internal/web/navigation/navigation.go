// Package navigation provides the site menu and per page breadcrumbs.
package navigation

// MenuItem is an entry of the main menu. Section matches Context.ActiveSection.
type MenuItem struct {
	Title   string
	URL     string
	Section string
}

// Menu is the main menu shown in the base layout.
var Menu = []MenuItem{
	{Title: "Home", URL: "/", Section: "home"},
	{Title: "About", URL: "/about", Section: "about"},
	{Title: "Events", URL: "/events", Section: "events"},
	{Title: "Stories", URL: "/stories", Section: "stories"},
	{Title: "Blog", URL: "/blog", Section: "blog"},
	{Title: "Resources", URL: "/resources", Section: "resources"},
	{Title: "Contact", URL: "/contact", Section: "contact"},
	{Title: "Donate", URL: "/donate", Section: "donate"},
}

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb appends a breadcrumb and returns c for chaining.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// Menu returns the main menu.
func (c *Context) Menu() []MenuItem { return Menu }

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// HasBreadcrumbs reports whether more than the home crumb is set.
func (c *Context) HasBreadcrumbs() bool {
	return len(c.Breadcrumbs) > 1
}

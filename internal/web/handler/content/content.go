// Package content serves the list and detail pages of catalog sections
// together with their comment forms.
package content

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/controller/comment"
	"github.com/gywan/gywan-site/internal/validation"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
	"github.com/gywan/gywan-site/internal/web/session"
)

// CommentThanks is flashed after a stored comment.
const CommentThanks = "Thank you for your comment!"

// Extras adds section specific values to the template data.
type Extras[T any] func(c *fiber.Ctx, db *gorm.DB, item *T, data fiber.Map) error

// Section serves one catalog kind below /<kind>.
type Section[T any] struct {
	// Kind selects the routes, templates and comment targets.
	Kind catalog.Kind
	// Title is the section heading, e.g. "Events".
	Title string
	// ItemTitle names an item in breadcrumbs.
	ItemTitle func(*T) string
	List      func(db *gorm.DB, q catalog.Query) (catalog.Page[T], error)
	Get       func(db *gorm.DB, id uint64) (*T, error)

	// ListExtras is called with a nil item. Optional.
	ListExtras Extras[T]
	// DetailExtras is called with the shown item. Optional.
	DetailExtras Extras[T]

	db *gorm.DB
}

// Path returns the list page path.
func (s *Section[T]) Path() string {
	return handler.RootPath + string(s.Kind)
}

// ListTemplate is the list page template.
func (s *Section[T]) ListTemplate() string {
	return string(s.Kind) + "/list"
}

// DetailTemplate is the detail page template.
func (s *Section[T]) DetailTemplate() string {
	return string(s.Kind) + "/detail"
}

// Register adds the list and detail routes of the section to app.
func (s *Section[T]) Register(app *fiber.App, db *gorm.DB) {
	s.db = db

	app.Route(s.Path(), func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.ListPage)
		router.Post(handler.RouterRootPath, s.PostSectionComment)
		router.Get("/:id<int>", s.DetailPage)
		router.Post("/:id<int>", s.PostItemComment)
	})
}

func (s *Section[T]) nav() *navigation.Context {
	return navigation.NewContext(s.Title, string(s.Kind), "list").
		AddBreadcrumb("Home", handler.RootPath, false)
}

// ListPage renders one page of visible items and the section comments.
func (s *Section[T]) ListPage(c *fiber.Ctx) error {
	q := catalog.Query{
		Text:        c.Query("q"),
		Category:    c.Query("category"),
		Page:        c.QueryInt("page", 1),
		IncludePast: c.QueryBool("past"),
	}

	page, err := s.List(s.db, q)
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.Kind)).Msg("failed to list items")
		return fiber.ErrInternalServerError
	}

	target, err := comment.SectionFor(s.Kind)
	if err != nil {
		return err
	}

	comments, err := comment.Recent(s.db, target, comment.RecentLimit)
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.Kind)).Msg("failed to load comments")
		return fiber.ErrInternalServerError
	}

	data := fiber.Map{
		"Page":     page,
		"Items":    page.Items,
		"Query":    q,
		"Comments": comments,
		"BasePath": s.Path(),
	}

	if s.ListExtras != nil {
		if err := s.ListExtras(c, s.db, nil, data); err != nil {
			return err
		}
	}

	return handler.Render(c, s.ListTemplate(), s.nav().AddBreadcrumb(s.Title, s.Path(), true), data)
}

// DetailPage renders a single visible item with its comments.
func (s *Section[T]) DetailPage(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	item, err := s.Get(s.db, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Str("kind", string(s.Kind)).Uint64("id", id).Msg("failed to load item")

		return fiber.ErrInternalServerError
	}

	target, err := comment.TargetFor(s.Kind, id)
	if err != nil {
		return err
	}

	comments, err := comment.Recent(s.db, target, comment.RecentLimit)
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.Kind)).Uint64("id", id).Msg("failed to load comments")
		return fiber.ErrInternalServerError
	}

	data := fiber.Map{
		"Item":     item,
		"Comments": comments,
		"BasePath": s.Path(),
	}

	if s.DetailExtras != nil {
		if err := s.DetailExtras(c, s.db, item, data); err != nil {
			return err
		}
	}

	nav := s.nav().
		AddBreadcrumb(s.Title, s.Path(), false).
		AddBreadcrumb(s.ItemTitle(item), fmt.Sprintf("%s/%d", s.Path(), id), true)
	nav.ActivePage = "detail"

	return handler.Render(c, s.DetailTemplate(), nav, data)
}

// PostSectionComment stores an anonymous comment on the list page.
func (s *Section[T]) PostSectionComment(c *fiber.Ctx) error {
	var sub comment.AnonymousSubmission

	if err := c.BodyParser(&sub); err != nil {
		return fiber.ErrBadRequest
	}

	target, err := comment.SectionFor(s.Kind)
	if err != nil {
		return err
	}

	return s.attach(c, target, sub)
}

// PostItemComment stores an attributed comment on a visible item.
func (s *Section[T]) PostItemComment(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	var sub comment.AttributedSubmission

	if err := c.BodyParser(&sub); err != nil {
		return fiber.ErrBadRequest
	}

	target, err := comment.TargetFor(s.Kind, id)
	if err != nil {
		return err
	}

	return s.attach(c, target, sub)
}

func (s *Section[T]) attach(c *fiber.Ctx, target comment.Target, sub any) error {
	_, err := comment.Attach(s.db, target, sub)

	var verrs validation.Errors

	switch {
	case err == nil:
		session.AddFlash(c, session.LevelSuccess, CommentThanks)
	case errors.Is(err, comment.ErrTargetNotFound):
		return fiber.ErrNotFound
	case errors.As(err, &verrs):
		session.AddFlash(c, session.LevelError, "Your comment was not saved: "+verrs.Error())
	default:
		log.Error().Err(err).Str("kind", string(s.Kind)).Msg("failed to store comment")
		return fiber.ErrInternalServerError
	}

	return c.Redirect(c.Path())
}

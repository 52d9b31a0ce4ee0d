// Package blog serves blog posts and their RSS feed.
package blog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/handler/content"
)

// Handler serves /blog.
var Handler = content.Section[models.BlogPost]{
	Kind:      catalog.KindBlogPost,
	Title:     "Blog",
	ItemTitle: func(p *models.BlogPost) string { return p.Title },
	List:      catalog.ListBlogPosts,
	Get:       catalog.GetBlogPost,
}

// Init registers the blog routes and the feed.
func Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	feed := &Feed{cfg: cfg, db: db}

	app.Get(FeedPath, feed.Get)
	Handler.Register(app, db)
}

package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/feeds"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
)

const (
	// FeedPath is the RSS feed of published posts.
	FeedPath = "/blog/feed.xml"

	// FeedSize is the number of posts in the feed.
	FeedSize = 20
)

// Feed renders published posts as RSS 2.0.
type Feed struct {
	cfg *config.Config
	db  *gorm.DB
}

// Get writes the feed.
func (f *Feed) Get(c *fiber.Ctx) error {
	posts, err := catalog.RecentBlogPosts(f.db, FeedSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to load posts for feed")
		return fiber.ErrInternalServerError
	}

	rss, err := Build(f.cfg.Title, f.cfg.Webserver.URL, posts).ToRss()
	if err != nil {
		log.Error().Err(err).Msg("failed to render feed")
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")

	return c.SendString(rss)
}

// Build creates the feed for posts, newest first. baseURL is the public site address.
func Build(title, baseURL string, posts []models.BlogPost) *feeds.Feed {
	base := strings.TrimRight(baseURL, "/")

	feed := &feeds.Feed{
		Title:       title + " Blog",
		Link:        &feeds.Link{Href: base + "/blog"},
		Description: "News and stories from " + title,
	}

	for i := range posts {
		p := &posts[i]
		link := fmt.Sprintf("%s/blog/%d", base, p.ID)

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Summary,
			Content:     p.Content,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})

		if p.CreatedAt.After(feed.Created) {
			feed.Created = p.CreatedAt
		}
	}

	if feed.Created.IsZero() {
		feed.Created = time.Now().UTC()
	}

	return feed
}

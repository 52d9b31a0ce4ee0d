package home

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/controller/display"
	"github.com/gywan/gywan-site/internal/db/controller/intake"
	"github.com/gywan/gywan-site/internal/db/models"
)

// Section sizes of the homepage.
const (
	EventLimit        = 6
	StoryLimit        = 6
	ResourceLimit     = 6
	PostLimit         = 5
	AnnouncementLimit = 5
)

// EventCard is an upcoming event teaser.
type EventCard struct {
	Title       string
	Date        time.Time
	Description string
	Location    string
	URL         string
}

// StoryCard is a success story teaser.
type StoryCard struct {
	Title    string
	Content  string
	Author   string
	Location string
	URL      string
}

// ResourceCard is a downloadable resource teaser.
type ResourceCard struct {
	Title         string
	Description   string
	Category      string
	DownloadCount int64
	URL           string
}

// PostCard is a blog post teaser.
type PostCard struct {
	Title    string
	Summary  string
	Category string
	Date     time.Time
	URL      string
}

// StatCard is one impact figure.
type StatCard struct {
	Value       string `yaml:"value"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// Home is everything the homepage shows.
type Home struct {
	UpcomingEvents  []EventCard
	RecentStories   []StoryCard
	RecentResources []ResourceCard
	BlogPosts       []PostCard
	ImpactStats     []StatCard
	Announcements   []models.Announcement
	Testimonials    []models.Testimonial
	NewsletterForm  intake.NewsletterForm
}

// Compose builds the homepage for now. Empty content sections are filled
// with placeholders; announcements and testimonials are shown as stored.
func Compose(db *gorm.DB, now time.Time) (*Home, error) {
	ph, err := Placeholders()
	if err != nil {
		return nil, err
	}

	h := &Home{}

	events, err := catalog.UpcomingEvents(db, now, EventLimit)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}

	h.UpcomingEvents = orFallback(eventCards(events), ph.Events)

	stories, err := catalog.RecentStories(db, StoryLimit)
	if err != nil {
		return nil, fmt.Errorf("recent stories: %w", err)
	}

	h.RecentStories = orFallback(storyCards(stories), ph.Stories)

	resources, err := catalog.RecentResources(db, ResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("recent resources: %w", err)
	}

	h.RecentResources = orFallback(resourceCards(resources), ph.Resources)

	posts, err := catalog.RecentBlogPosts(db, PostLimit)
	if err != nil {
		return nil, fmt.Errorf("recent blog posts: %w", err)
	}

	h.BlogPosts = orFallback(postCards(posts), ph.Posts)

	stats, err := display.ImpactStats(db)
	if err != nil {
		return nil, fmt.Errorf("impact stats: %w", err)
	}

	h.ImpactStats = orFallback(statCards(stats), ph.Stats)

	if h.Announcements, err = display.Announcements(db, AnnouncementLimit); err != nil {
		return nil, fmt.Errorf("announcements: %w", err)
	}

	if h.Testimonials, err = display.Testimonials(db); err != nil {
		return nil, fmt.Errorf("testimonials: %w", err)
	}

	return h, nil
}

func orFallback[T any](items, placeholders []T) []T {
	if len(items) == 0 {
		return placeholders
	}

	return items
}

func eventCards(events []models.Event) []EventCard {
	out := make([]EventCard, 0, len(events))
	for _, e := range events {
		out = append(out, EventCard{
			Title:       e.Title,
			Date:        e.Date,
			Description: e.Description,
			Location:    e.Location,
			URL:         fmt.Sprintf("/%s/%d", catalog.KindEvent, e.ID),
		})
	}

	return out
}

func storyCards(stories []models.Story) []StoryCard {
	out := make([]StoryCard, 0, len(stories))
	for _, s := range stories {
		out = append(out, StoryCard{
			Title:    s.Title,
			Content:  s.Content,
			Author:   s.Author,
			Location: s.Location,
			URL:      fmt.Sprintf("/%s/%d", catalog.KindStory, s.ID),
		})
	}

	return out
}

func resourceCards(resources []models.Resource) []ResourceCard {
	out := make([]ResourceCard, 0, len(resources))
	for _, r := range resources {
		out = append(out, ResourceCard{
			Title:         r.Title,
			Description:   r.Description,
			Category:      r.Category.Display(),
			DownloadCount: r.DownloadCount,
			URL:           fmt.Sprintf("/%s/%d", catalog.KindResource, r.ID),
		})
	}

	return out
}

func postCards(posts []models.BlogPost) []PostCard {
	out := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostCard{
			Title:    p.Title,
			Summary:  p.Summary,
			Category: p.Category,
			Date:     p.CreatedAt,
			URL:      fmt.Sprintf("/%s/%d", catalog.KindBlogPost, p.ID),
		})
	}

	return out
}

func statCards(stats []models.ImpactStat) []StatCard {
	out := make([]StatCard, 0, len(stats))
	for _, s := range stats {
		out = append(out, StatCard{Value: s.Value, Label: s.Label, Description: s.Description})
	}

	return out
}

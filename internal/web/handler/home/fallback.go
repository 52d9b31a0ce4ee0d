package home

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// PlaceholderURL is the link target of placeholder cards.
const PlaceholderURL = "#"

const dateLayout = "2006-01-02"

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackFile struct {
	Events []struct {
		Title       string `yaml:"title"`
		Date        string `yaml:"date"`
		Description string `yaml:"description"`
		Location    string `yaml:"location"`
	} `yaml:"events"`
	Stories []struct {
		Author   string `yaml:"author"`
		Title    string `yaml:"title"`
		Content  string `yaml:"content"`
		Location string `yaml:"location"`
	} `yaml:"stories"`
	Resources []struct {
		Category      string `yaml:"category"`
		Title         string `yaml:"title"`
		Description   string `yaml:"description"`
		DownloadCount int64  `yaml:"download_count"`
	} `yaml:"resources"`
	Posts []struct {
		Category string `yaml:"category"`
		Title    string `yaml:"title"`
		Summary  string `yaml:"summary"`
		Date     string `yaml:"date"`
	} `yaml:"posts"`
	Stats []StatCard `yaml:"stats"`
}

// Fallback holds the placeholder cards per homepage section.
type Fallback struct {
	Events    []EventCard
	Stories   []StoryCard
	Resources []ResourceCard
	Posts     []PostCard
	Stats     []StatCard
}

var (
	fallbackOnce sync.Once
	fallback     Fallback
	fallbackErr  error
)

// Placeholders returns the embedded placeholder content.
// Callers get fresh slices they may modify.
func Placeholders() (Fallback, error) {
	fallbackOnce.Do(func() {
		fallback, fallbackErr = parseFallback(fallbackYAML)
	})

	if fallbackErr != nil {
		return Fallback{}, fallbackErr
	}

	return Fallback{
		Events:    append([]EventCard(nil), fallback.Events...),
		Stories:   append([]StoryCard(nil), fallback.Stories...),
		Resources: append([]ResourceCard(nil), fallback.Resources...),
		Posts:     append([]PostCard(nil), fallback.Posts...),
		Stats:     append([]StatCard(nil), fallback.Stats...),
	}, nil
}

func parseFallback(raw []byte) (Fallback, error) {
	var (
		f   fallbackFile
		out Fallback
	)

	if err := yaml.Unmarshal(raw, &f); err != nil {
		return out, fmt.Errorf("decode homepage placeholders: %w", err)
	}

	for _, e := range f.Events {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return out, fmt.Errorf("placeholder event %q: %w", e.Title, err)
		}

		out.Events = append(out.Events, EventCard{
			Title: e.Title, Date: date, Description: e.Description, Location: e.Location, URL: PlaceholderURL,
		})
	}

	for _, s := range f.Stories {
		out.Stories = append(out.Stories, StoryCard{
			Title: s.Title, Content: s.Content, Author: s.Author, Location: s.Location, URL: PlaceholderURL,
		})
	}

	for _, r := range f.Resources {
		out.Resources = append(out.Resources, ResourceCard{
			Title: r.Title, Description: r.Description, Category: r.Category,
			DownloadCount: r.DownloadCount, URL: PlaceholderURL,
		})
	}

	for _, p := range f.Posts {
		date, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return out, fmt.Errorf("placeholder post %q: %w", p.Title, err)
		}

		out.Posts = append(out.Posts, PostCard{
			Title: p.Title, Summary: p.Summary, Category: p.Category, Date: date, URL: PlaceholderURL,
		})
	}

	out.Stats = f.Stats

	return out, nil
}

package comment

import (
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
)

// Target is the thing a comment is attached to. The set of implementations is
// closed: item targets for each content kind, and SectionTarget for list pages.
type Target interface {
	target() (models.CommentTargetType, uint64)
}

// EventTarget attaches a comment to one event.
type EventTarget struct{ ID uint64 }

// StoryTarget attaches a comment to one story.
type StoryTarget struct{ ID uint64 }

// BlogPostTarget attaches a comment to one blog post.
type BlogPostTarget struct{ ID uint64 }

// ResourceTarget attaches a comment to one resource.
type ResourceTarget struct{ ID uint64 }

// SectionTarget attaches an anonymous comment to the list page of a content type.
type SectionTarget struct{ Type models.CommentTargetType }

func (t EventTarget) target() (models.CommentTargetType, uint64) {
	return models.CommentTargetEvent, t.ID
}

func (t StoryTarget) target() (models.CommentTargetType, uint64) {
	return models.CommentTargetStory, t.ID
}

func (t BlogPostTarget) target() (models.CommentTargetType, uint64) {
	return models.CommentTargetBlogPost, t.ID
}

func (t ResourceTarget) target() (models.CommentTargetType, uint64) {
	return models.CommentTargetResource, t.ID
}

func (t SectionTarget) target() (models.CommentTargetType, uint64) {
	return t.Type, 0
}

// kindOf maps a comment target type to its catalog kind.
func kindOf(tt models.CommentTargetType) (catalog.Kind, bool) {
	switch tt {
	case models.CommentTargetEvent:
		return catalog.KindEvent, true
	case models.CommentTargetStory:
		return catalog.KindStory, true
	case models.CommentTargetBlogPost:
		return catalog.KindBlogPost, true
	case models.CommentTargetResource:
		return catalog.KindResource, true
	default:
		return "", false
	}
}

// TargetFor returns the item target of kind with id.
func TargetFor(kind catalog.Kind, id uint64) (Target, error) {
	switch kind {
	case catalog.KindEvent:
		return EventTarget{ID: id}, nil
	case catalog.KindStory:
		return StoryTarget{ID: id}, nil
	case catalog.KindBlogPost:
		return BlogPostTarget{ID: id}, nil
	case catalog.KindResource:
		return ResourceTarget{ID: id}, nil
	default:
		return nil, catalog.ErrUnknownKind
	}
}

// SectionFor returns the list page target of kind.
func SectionFor(kind catalog.Kind) (Target, error) {
	t, err := TargetFor(kind, 0)
	if err != nil {
		return nil, err
	}

	tt, _ := t.target()

	return SectionTarget{Type: tt}, nil
}

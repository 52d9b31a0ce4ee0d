package models

import "time"

// CommentTargetType names the kind of content a comment belongs to.
type CommentTargetType string

const (
	CommentTargetEvent    CommentTargetType = "event"
	CommentTargetStory    CommentTargetType = "story"
	CommentTargetBlogPost CommentTargetType = "blog_post"
	CommentTargetResource CommentTargetType = "resource"
)

// Comment is a short text attached to a content item or, with TargetID 0,
// to a list page of that content type.
type Comment struct {
	ID         uint64            `gorm:"primaryKey"`
	Text       string            `gorm:"type:text;not null"`
	Name       string            `gorm:"size:100"`
	Email      string            `gorm:"size:254"`
	TargetType CommentTargetType `gorm:"type:varchar(20);index:idx_comment_target;not null"`
	TargetID   uint64            `gorm:"index:idx_comment_target;not null;default:0"`
	CreatedAt  time.Time         `gorm:"index"`
}

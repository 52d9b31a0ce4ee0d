package models

import (
	"time"

	"gorm.io/gorm"
)

// ResourceCategory classifies a downloadable resource.
type ResourceCategory string

const (
	ResourceToolkit    ResourceCategory = "toolkit"
	ResourceGuide      ResourceCategory = "guide"
	ResourceReport     ResourceCategory = "report"
	ResourceCurriculum ResourceCategory = "curriculum"
	ResourceOther      ResourceCategory = "other"
)

// ResourceCategories lists all categories in display order.
var ResourceCategories = []ResourceCategory{
	ResourceToolkit, ResourceGuide, ResourceReport, ResourceCurriculum, ResourceOther,
}

// Valid reports whether c is a known category.
func (c ResourceCategory) Valid() bool {
	for _, known := range ResourceCategories {
		if c == known {
			return true
		}
	}

	return false
}

// Display returns the human readable category name.
func (c ResourceCategory) Display() string {
	switch c {
	case ResourceToolkit:
		return "Toolkit"
	case ResourceGuide:
		return "Guide"
	case ResourceReport:
		return "Report"
	case ResourceCurriculum:
		return "Curriculum"
	case ResourceOther:
		return "Other"
	default:
		return string(c)
	}
}

// Event is a scheduled program or gathering.
type Event struct {
	ID          uint64    `gorm:"primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"index"`
	Location    string    `gorm:"size:200"`
	IsActive    bool      `gorm:"index;not null"`
	// SearchText is the folded search document, see FoldSearch.
	SearchText string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// Story is a success story told by or about a participant.
type Story struct {
	ID       uint64 `gorm:"primaryKey"`
	Title    string `gorm:"size:200;not null"`
	Content  string `gorm:"type:text"`
	Author   string `gorm:"size:100"`
	Location string `gorm:"size:100"`
	IsActive bool   `gorm:"index;not null"`
	// SearchText is the folded search document, see FoldSearch.
	SearchText string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// BlogPost is an article. It is public only when both Published and IsActive are set.
type BlogPost struct {
	ID       uint64 `gorm:"primaryKey"`
	Title    string `gorm:"size:200;not null"`
	Summary  string `gorm:"size:500"`
	Content  string `gorm:"type:text"`
	Category string `gorm:"size:100"`
	// Tags is a comma separated list.
	Tags      string `gorm:"size:255"`
	Published bool   `gorm:"index;not null"`
	IsActive  bool   `gorm:"index;not null"`
	// SearchText is the folded search document, see FoldSearch.
	SearchText string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// Resource is a downloadable document.
type Resource struct {
	ID          uint64           `gorm:"primaryKey"`
	Title       string           `gorm:"size:200;not null"`
	Description string           `gorm:"type:text"`
	Category    ResourceCategory `gorm:"type:varchar(20);index;not null;default:'other'"`
	// FileKey is the object key inside the configured storage backend.
	FileKey       string `gorm:"size:255"`
	DownloadCount int64  `gorm:"not null;default:0"`
	IsActive      bool   `gorm:"index;not null"`
	// SearchText is the folded search document, see FoldSearch.
	SearchText string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// BeforeSave stores event dates in UTC so they compare correctly as text in SQLite,
// and refreshes the search document.
func (e *Event) BeforeSave(_ *gorm.DB) error {
	e.Date = e.Date.UTC()
	e.SearchText = e.SearchDocument()

	return nil
}

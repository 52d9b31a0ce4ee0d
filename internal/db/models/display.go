package models

import "time"

// TeamMember is shown on the about and team pages.
type TeamMember struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Role      string `gorm:"size:100"`
	Bio       string `gorm:"type:text"`
	PhotoKey  string `gorm:"size:255"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
}

type Supporter struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Website   string `gorm:"size:255"`
	LogoKey   string `gorm:"size:255"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
}

type Testimonial struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Role      string `gorm:"size:100"`
	Quote     string `gorm:"type:text;not null"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
}

type Announcement struct {
	ID        uint64    `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Body      string    `gorm:"type:text"`
	Link      string    `gorm:"size:255"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// ImpactStat is a headline number on the homepage, e.g. "10K+ Girls Empowered".
type ImpactStat struct {
	ID          uint64 `gorm:"primaryKey"`
	Value       string `gorm:"size:20;not null"`
	Label       string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	IsActive    bool   `gorm:"not null"`
	CreatedAt   time.Time
}

// ImpactStory is a short story shown next to the donation form.
type ImpactStory struct {
	ID        uint64    `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Content   string    `gorm:"type:text"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

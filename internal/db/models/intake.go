package models

import "time"

// ContactMessage is a submitted contact form. Rows are never updated.
type ContactMessage struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:254;not null"`
	Subject   string `gorm:"size:200;not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID    uint64 `gorm:"primaryKey"`
	Email string `gorm:"size:254;uniqueIndex;not null"`
	Name  string `gorm:"size:100"`
	// CancelToken is sent in every newsletter to allow unsubscribing.
	CancelToken string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt   time.Time
}

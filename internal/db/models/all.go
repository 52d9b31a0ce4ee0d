package models

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Event{},
		&Story{},
		&BlogPost{},
		&Resource{},
		&Comment{},
		&ContactMessage{},
		&Subscriber{},
		&MobileProvider{},
		&Bank{},
		&Donation{},
		&TeamMember{},
		&Supporter{},
		&Testimonial{},
		&Announcement{},
		&ImpactStat{},
		&ImpactStory{},
	}
}

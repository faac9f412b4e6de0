package content

import "time"

// NewsPost, MediaItem and MerchItem are the public-site content catalog.
// They are simple records; no workflow hangs off them.

type NewsPost struct {
	ID          string
	Title       string
	Body        string
	PublishedAt time.Time
	CreatedAt   time.Time
}

type MediaItem struct {
	ID        string
	Title     string
	URL       string
	Kind      string
	CreatedAt time.Time
}

type MerchItem struct {
	ID         string
	Name       string
	PriceCents int64
	ImageURL   string
	Active     bool
	CreatedAt  time.Time
}

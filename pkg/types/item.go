package types

import (
	"net/url"
	"strings"
	"time"
)

// Item is a single wishlist entry: a display title and an external link.
type Item struct {
	ItemID     string    // UUID v7, generated on creation.
	CategoryID string    // Owning category; every item has exactly one.
	Title      string    // Display title (required, non-blank).
	Link       string    // http, https or ftp URL.
	CreatedAt  time.Time // Timestamp of creation.
}

// allowedLinkSchemes is the set of URL schemes an item link may use.
var allowedLinkSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// ValidateLink returns ErrInvalidLink unless link parses as an absolute URL
// with an http, https or ftp scheme and a host.
func ValidateLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return ErrInvalidLink
	}
	u, err := url.Parse(link)
	if err != nil {
		return ErrInvalidLink
	}
	if !allowedLinkSchemes[strings.ToLower(u.Scheme)] || u.Host == "" {
		return ErrInvalidLink
	}
	return nil
}

// Validate checks the title and link. The title is checked first so an
// item missing both reports ErrInvalidTitle.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrInvalidTitle
	}
	return ValidateLink(i.Link)
}

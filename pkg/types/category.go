package types

import (
	"strings"
	"time"
)

// Category is a named group of wishlist items. Items are not held on the
// category; they reference it through Item.CategoryID.
type Category struct {
	CategoryID string    // UUID v7, generated on creation.
	Name       string    // Display name (required, non-blank).
	CreatedAt  time.Time // Timestamp of creation.
}

// Validate returns ErrInvalidName if the name is empty or only whitespace.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// Rename sets a new name after validating it. The category is left
// unchanged on error.
func (c *Category) Rename(name string) error {
	next := Category{Name: name}
	if err := next.Validate(); err != nil {
		return err
	}
	c.Name = name
	return nil
}

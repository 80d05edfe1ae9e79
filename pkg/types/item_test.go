package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLink(t *testing.T) {
	tests := []struct {
		link  string
		valid bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"ftp://files.example.com/pub", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"not a url", false},
		{"", false},
		{"   ", false},
		{"mailto:someone@example.com", false},
		{"file:///etc/passwd", false},
		{"https://", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			err := ValidateLink(tt.link)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidLink)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestItemValidate(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		i := &Item{Title: "Dune", Link: "https://example.com"}
		assert.NoError(t, i.Validate())
	})

	t.Run("empty title", func(t *testing.T) {
		i := &Item{Title: "", Link: "https://example.com"}
		assert.ErrorIs(t, i.Validate(), ErrInvalidTitle)
	})

	t.Run("blank title and bad link reports title", func(t *testing.T) {
		i := &Item{Title: " ", Link: "nope"}
		assert.ErrorIs(t, i.Validate(), ErrInvalidTitle)
	})

	t.Run("bad link", func(t *testing.T) {
		i := &Item{Title: "Dune", Link: "not a url"}
		err := i.Validate()
		assert.True(t, errors.Is(err, ErrInvalidLink))
	})
}

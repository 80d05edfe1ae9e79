package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dune", "dune"},
		{"Café", "cafe"},
		{"CRÈME BRÛLÉE", "creme brulee"},
		{"naïve", "naive"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Café au lait", "cafe"))
	assert.True(t, Contains("cafe au lait", "CAFÉ"))
	assert.True(t, Contains("Dune", ""))
	assert.True(t, Contains("Dune Messiah", "MESS"))
	assert.False(t, Contains("Dune", "dunes"))
	assert.False(t, Contains("Foundation", "dune"))
}

func TestSorter(t *testing.T) {
	t.Run("ignores case", func(t *testing.T) {
		s := NewSorter("")
		assert.Equal(t, 0, s.Compare("dune", "DUNE"))
		assert.Negative(t, s.Compare("apple", "Banana"))
		assert.Positive(t, s.Compare("cherry", "Banana"))
	})

	t.Run("stable sort", func(t *testing.T) {
		s := NewSorter("en")
		titles := []string{"zebra", "Apple", "banana", "apple", "Éclair"}
		s.SortStable(len(titles),
			func(i int) string { return titles[i] },
			func(i, j int) { titles[i], titles[j] = titles[j], titles[i] })
		assert.Equal(t, []string{"Apple", "apple", "banana", "Éclair", "zebra"}, titles)
	})

	t.Run("bad locale falls back to root", func(t *testing.T) {
		assert.Equal(t, "und", NewSorter("not a locale!").Locale())
		assert.Equal(t, "sv", NewSorter("sv").Locale())
	})
}

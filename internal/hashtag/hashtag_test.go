package hashtag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vedran77/chirp/internal/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "plain text", nil},
		{"bare hash ignored", "# alone #", nil},
		{"keeps punctuation and case", "#Go, is #go!", []string{"#Go,", "#go!"}},
		{"any whitespace", "a\t#one\n#two  #one", []string{"#one", "#two", "#one"}},
		{"mid-word hash is not a tag", "issue#12 #real", []string{"#real"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.content))
		})
	}
}

func TestCount(t *testing.T) {
	t.Run("counts and orders by frequency", func(t *testing.T) {
		got := Count([]string{"#a #a", "#b"})

		assert.Equal(t, []domain.Trend{
			{Hashtag: "#a", Count: 2},
			{Hashtag: "#b", Count: 1},
		}, got)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		got := Count([]string{"#zeta #alpha", "#mid", "#alpha #zeta #mid"})

		assert.Equal(t, []domain.Trend{
			{Hashtag: "#zeta", Count: 2},
			{Hashtag: "#alpha", Count: 2},
			{Hashtag: "#mid", Count: 2},
		}, got)
	})

	t.Run("lone hash never counted", func(t *testing.T) {
		got := Count([]string{"# #", "#x #"})

		assert.Equal(t, []domain.Trend{{Hashtag: "#x", Count: 1}}, got)
	})

	t.Run("case sensitive", func(t *testing.T) {
		got := Count([]string{"#Go #go #go"})

		assert.Equal(t, []domain.Trend{
			{Hashtag: "#go", Count: 2},
			{Hashtag: "#Go", Count: 1},
		}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Count(nil))
		assert.NotNil(t, Count(nil))
	})
}

package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagListNames(t *testing.T) {
	tests := []struct {
		name string
		raw  TagList
		want []string
	}{
		{"well formed", `[{"id":1,"name":"RPG"},{"id":2,"name":"Adventure"}]`, []string{"RPG", "Adventure"}},
		{"empty", "", nil},
		{"not json", "RPG, Adventure", nil},
		{"object instead of array", `{"name":"RPG"}`, nil},
		{"truncated", `[{"name":"RPG"`, nil},
		{"missing names skipped", `[{"id":1},{"name":"Puzzle"}]`, []string{"Puzzle"}},
		{"non-string names skipped", `[{"name":7},{"name":"Puzzle"}]`, []string{"Puzzle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, tt.raw.Names())
			})
		})
	}
}

func TestTagListDecodesAnyShape(t *testing.T) {
	payload := `[
		{"id":"1","name":"Foo","genres":"[{\"name\":\"RPG\"}]","platforms":null},
		{"id":"2","name":"Bar","genres":[{"name":"RPG"}],"platforms":7}
	]`

	var games []GameRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &games))
	require.Len(t, games, 2)

	assert.Equal(t, []string{"RPG"}, games[0].Genres.Names())
	assert.Equal(t, TagList(""), games[0].Platforms)
	assert.Equal(t, []string{"RPG"}, games[1].Genres.Names())
	assert.Equal(t, TagList("7"), games[1].Platforms)
	assert.Nil(t, games[1].Platforms.Names())
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 GB", FormatFileSize(0))
	assert.Equal(t, "512 Bytes", FormatFileSize(512))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 MB", FormatFileSize(1536*1024))
	assert.Equal(t, "1 GB", FormatFileSize(1<<30))
	assert.Equal(t, "2.25 TB", FormatFileSize(2*(1<<40)+(1<<38)))
}

func TestGameRecordReleaseYear(t *testing.T) {
	var g GameRecord
	_, ok := g.ReleaseYear()
	assert.False(t, ok)

	date := time.Date(2017, time.March, 3, 0, 0, 0, 0, time.UTC)
	g.ReleaseDate = &date
	year, ok := g.ReleaseYear()
	assert.True(t, ok)
	assert.Equal(t, 2017, year)
}

func TestErrorTiers(t *testing.T) {
	transport := fmt.Errorf("loading games: %w", &APIError{Status: 500, Endpoint: "/games"})
	rejected := fmt.Errorf("adding game: %w", &RejectedError{Message: "duplicate"})

	assert.True(t, IsTransport(transport))
	assert.False(t, IsRejected(transport))
	assert.True(t, IsRejected(rejected))
	assert.False(t, IsTransport(rejected))
	assert.Equal(t, "HTTP error! status: 500", (&APIError{Status: 500}).Error())

	cause := errors.New("connection refused")
	assert.ErrorIs(t, &APIError{Err: cause}, cause)
}

func TestCategoryCountsCount(t *testing.T) {
	c := CategoryCounts{All: 3, Installed: 1, Uninstalled: 2}
	assert.Equal(t, 3, c.Count(FilterAll))
	assert.Equal(t, 1, c.Count(FilterInstalled))
	assert.Equal(t, 2, c.Count(FilterUninstalled))
}

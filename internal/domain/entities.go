package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// GameRecord is a catalog entry tracked by the backend
type GameRecord struct {
	ID          string     `json:"id"`
	IGDBID      *int64     `json:"igdb_id"` // External catalog reference
	Name        string     `json:"name"`
	Summary     *string    `json:"summary"`
	Storyline   *string    `json:"storyline"`
	Rating      *float64   `json:"rating"` // 0-100
	ReleaseDate *time.Time `json:"release_date"`
	CoverURL    *string    `json:"cover_url"`
	Genres      TagList    `json:"genres"`
	Platforms   TagList    `json:"platforms"`
	Developer   *string    `json:"developer"`
	Publisher   *string    `json:"publisher"`
	FilePath    *string    `json:"file_path"`
	FileSize    int64      `json:"file_size"` // Bytes
	IsInstalled bool       `json:"is_installed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReleaseYear returns the year of the release date, if known
func (g GameRecord) ReleaseYear() (int, bool) {
	if g.ReleaseDate == nil || g.ReleaseDate.IsZero() {
		return 0, false
	}
	return g.ReleaseDate.Year(), true
}

// FormattedFileSize returns the file size in a human-readable format
func (g GameRecord) FormattedFileSize() string {
	return FormatFileSize(g.FileSize)
}

// GameList is the payload of a catalog listing
type GameList struct {
	Games   []GameRecord `json:"games"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

// NewGame is the request body for adding a game. Optional fields encode as
// JSON null when unset.
type NewGame struct {
	Name     string  `json:"name"`
	IGDBID   *int64  `json:"igdb_id"`
	FilePath *string `json:"file_path"`
}

// Cover is an external catalog cover image
type Cover struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// Tag is a named genre or platform entry
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StoreResult is a transient candidate from the external catalog search.
// It is never persisted locally.
type StoreResult struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Summary          *string  `json:"summary"`
	Storyline        *string  `json:"storyline"`
	Rating           *float64 `json:"rating"`
	FirstReleaseDate *int64   `json:"first_release_date"` // Unix seconds
	Cover            *Cover   `json:"cover"`
	Genres           []Tag    `json:"genres"`
	Platforms        []Tag    `json:"platforms"`
}

// TagList is a pre-serialized JSON array of {"name": ...} objects. The
// backend stores it as a string, so it may be absent or malformed.
type TagList string

// UnmarshalJSON accepts any JSON value. A string keeps its contents; any
// other value is kept as raw text so Names can reject or read it. It never
// fails, so one odd record cannot sink a whole listing.
func (t *TagList) UnmarshalJSON(data []byte) error {
	value := gjson.ParseBytes(data)
	switch value.Type {
	case gjson.Null:
		*t = ""
	case gjson.String:
		*t = TagList(value.Str)
	default:
		*t = TagList(strings.TrimSpace(value.Raw))
	}
	return nil
}

// Names parses the list defensively. Malformed or absent input yields nil.
func (t TagList) Names() []string {
	raw := strings.TrimSpace(string(t))
	if raw == "" || !gjson.Valid(raw) {
		return nil
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil
	}

	var names []string
	for _, name := range parsed.Get("#.name").Array() {
		if name.Type == gjson.String && name.Str != "" {
			names = append(names, name.Str)
		}
	}
	return names
}

var sizeLabels = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with a base-1024 unit
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 GB"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeLabels) {
		i = len(sizeLabels) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	if value >= 1024 && i < len(sizeLabels)-1 {
		i++
		value /= 1024
	}
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64) + " " + sizeLabels[i]
}

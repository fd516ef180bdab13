package view

import (
	"strconv"
	"strings"

	"github.com/mmcdole/gamehub/internal/domain"
)

// Unknown is the fallback for absent detail fields
const Unknown = "Unknown"

// RenderDetail renders the detail modal for a single game
func RenderDetail(game domain.GameRecord) Node {
	title := game.Name
	if title == "" {
		title = Unknown
	}

	year := Unknown
	if y, ok := game.ReleaseYear(); ok {
		year = strconv.Itoa(y)
	}

	status := "Not Installed"
	if game.IsInstalled {
		status = "Installed"
	}

	fields := container("detail-fields",
		field("Developer", orUnknown(game.Developer)),
		field("Publisher", orUnknown(game.Publisher)),
		field("Release Year", year),
		field("Genres", joinOrUnknown(game.Genres.Names())),
		field("Platforms", joinOrUnknown(game.Platforms.Names())),
	)
	if game.Rating != nil {
		fields.Children = append(fields.Children, field("Rating", FormatRating(*game.Rating)))
	}
	fields.Children = append(fields.Children,
		field("Status", status),
		field("Size", game.FormattedFileSize()),
	)

	root := container("game-detail",
		el(KindTitle, "modal-title", title),
		coverImage(game.CoverURL),
		fields,
	)

	if game.Summary != nil && *game.Summary != "" {
		root.Children = append(root.Children, section("detail-summary", "Summary", *game.Summary))
	}
	if game.Storyline != nil && *game.Storyline != "" {
		root.Children = append(root.Children, section("detail-storyline", "Storyline", *game.Storyline))
	}

	root.Children = append(root.Children, container("modal-actions",
		installToggle(game),
		button("btn-modal-metadata", "Update Metadata", Action{Kind: ActionUpdateMetadata, GameID: game.ID}),
	))
	return root
}

func field(label, value string) Node {
	return el(KindField, "field-"+strings.ToLower(strings.ReplaceAll(label, " ", "-")), label+": "+value)
}

func section(class, heading, body string) Node {
	return container(class,
		el(KindHeading, class+"-heading", heading+":"),
		el(KindText, class+"-body", body),
	)
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return Unknown
	}
	return *s
}

func joinOrUnknown(names []string) string {
	if len(names) == 0 {
		return Unknown
	}
	return strings.Join(names, ", ")
}

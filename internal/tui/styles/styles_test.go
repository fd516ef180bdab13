package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestToastStylesBySeverity(t *testing.T) {
	tests := []struct {
		name  string
		style lipgloss.Style
		want  lipgloss.Color
	}{
		{"success", ToastSuccessStyle, Green},
		{"error", ToastErrorStyle, Red},
		{"warning", ToastWarningStyle, Yellow},
		{"info", ToastInfoStyle, Blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.style.GetBackground())
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Half-Life", Truncate("Half-Life", 20))
	assert.LessOrEqual(t, lipgloss.Width(Truncate("The Elder Scrolls V: Skyrim", 10)), 10)
}

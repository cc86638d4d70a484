package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(0, 2)

// Card renders a bordered stat card with a dim title above a large value.
func Card(title, value string, accent lipgloss.Color) string {
	body := StyleDim.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(value)
	return cardStyle.Render(body)
}

// Cards joins cards horizontally with a small gap.
func Cards(cards ...string) string {
	parts := make([]string, 0, len(cards)*2-1)
	for i, c := range cards {
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Pager renders numbered page buttons with the current page highlighted,
// e.g. "‹ 3 [4] 5 6 7 ›".
func Pager(window []int, current, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}
	var parts []string
	if current > 1 {
		parts = append(parts, Dim("‹"))
	}
	for _, p := range window {
		label := strconv.Itoa(p)
		if p == current {
			parts = append(parts, StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, Dim(label))
		}
	}
	if current < totalPages {
		parts = append(parts, Dim("›"))
	}
	return strings.Join(parts, " ")
}

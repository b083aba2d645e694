package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple left-aligned table with a styled header row.
// Column widths follow the widest cell in each column, measured in terminal
// cells so multibyte text lines up.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(renderRow(headers, widths, TableHeaderStyle))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(renderRow(row, widths, TableCellStyle))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		width := lipgloss.Width(cell)
		if i < len(widths) {
			width = widths[i]
		}
		padded[i] = style.Width(width + 2).Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

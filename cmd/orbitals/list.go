package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/orbitals/registry"
)

var (
	colorHeader = lipgloss.Color("#89b4fa")
	colorMuted  = lipgloss.Color("#6c7086")
	colorCenter = lipgloss.Color("#f9e2af")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	centerStyle = lipgloss.NewStyle().Foreground(colorCenter)
)

var listHeaders = []string{"SLOT", "ID", "ORIGIN", "SIZE", "CENTER", "HOST", "PID"}

// formatList renders the live viewports as an aligned table in slot order
func formatList(vs []registry.Viewport) string {
	if len(vs) == 0 {
		return mutedStyle.Render("no live viewports") + "\n"
	}

	rows := make([][]string, 0, len(vs))
	for i, v := range vs {
		cx, cy := v.Shape.Center()
		rows = append(rows, []string{
			strconv.Itoa(i),
			shortID(v.ID),
			fmt.Sprintf("%d,%d", v.Shape.X, v.Shape.Y),
			fmt.Sprintf("%dx%d", v.Shape.W, v.Shape.H),
			fmt.Sprintf("%.0f,%.0f", cx, cy),
			orDash(v.Meta["host"]),
			orDash(v.Meta["pid"]),
		})
	}

	widths := make([]int, len(listHeaders))
	for c, h := range listHeaders {
		widths[c] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(listHeaders, widths, func(int) lipgloss.Style { return headerStyle }))
	for _, row := range rows {
		lines = append(lines, renderRow(row, widths, func(c int) lipgloss.Style {
			switch c {
			case 1:
				return mutedStyle
			case 4:
				return centerStyle
			default:
				return lipgloss.NewStyle()
			}
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func renderRow(cells []string, widths []int, style func(c int) lipgloss.Style) string {
	var sb strings.Builder
	for c, cell := range cells {
		sb.WriteString(cellStyle.Width(widths[c] + 2).Render(style(c).Render(cell)))
	}
	return strings.TrimRight(sb.String(), " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

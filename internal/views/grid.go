package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	emptyMark = "◦"
	doneMark  = "•"
	doneValue = "true"
	cellWidth = 3
	maxLabel  = 24
)

type CellData struct {
	Value    string
	Recorded bool
}

type GridData struct {
	Month  string
	Header []string
	Labels []string
	Rows   [][]CellData
	// SelectedRow and SelectedCol are ignored unless HasSelection.
	SelectedRow  int
	SelectedCol  int
	HasSelection bool
	// TodayCol is -1 when today is outside the window.
	TodayCol int
}

var (
	monthStyle    = headerStyle
	dayStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	recordedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	todayStyle    = lipgloss.NewStyle().Background(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Background(lipgloss.Color("15"))
)

// RenderGrid draws the month title, the day header and one row per habit,
// each label prefixed with its row index.
func RenderGrid(data GridData) string {
	labels := make([]string, len(data.Labels))
	width := 0
	for i, label := range data.Labels {
		labels[i] = fmt.Sprintf("%d %s", i, truncate(label, maxLabel))
		if w := lipgloss.Width(labels[i]); w > width {
			width = w
		}
	}
	gutter := lipgloss.NewStyle().Width(width + 1)

	var b strings.Builder
	b.WriteString(monthStyle.Render(data.Month))
	b.WriteString("\n")
	b.WriteString(gutter.Render(""))
	for col, day := range data.Header {
		style := dayStyle
		if col == data.TodayCol {
			style = style.Inherit(todayStyle)
		}
		b.WriteString(style.Render(fitCell(day)))
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(no habits yet, try :add 'Drink Water')")
		return b.String()
	}
	for row, cells := range data.Rows {
		b.WriteString("\n")
		label := ""
		if row < len(labels) {
			label = labels[row]
		}
		b.WriteString(gutter.Render(labelStyle.Render(label)))
		for col, cell := range cells {
			b.WriteString(renderCell(cell, data.cellState(row, col)))
		}
	}
	return b.String()
}

type cellState int

const (
	cellNormal cellState = iota
	cellToday
	cellSelected
)

func (d GridData) cellState(row, col int) cellState {
	if d.HasSelection && d.SelectedRow == row && d.SelectedCol == col {
		return cellSelected
	}
	if col == d.TodayCol {
		return cellToday
	}
	return cellNormal
}

func renderCell(cell CellData, state cellState) string {
	text := CellText(cell)
	style := emptyStyle
	if cell.Recorded {
		style = recordedStyle
	}
	switch state {
	case cellSelected:
		style = selectedStyle
	case cellToday:
		style = style.Inherit(todayStyle)
	}
	return style.Render(text)
}

// CellText is the unstyled, fixed-width text of a cell.
func CellText(cell CellData) string {
	switch {
	case !cell.Recorded:
		return fitCell(emptyMark)
	case cell.Value == doneValue:
		return fitCell(doneMark)
	default:
		return fitCell(cell.Value)
	}
}

func fitCell(s string) string {
	return lipgloss.PlaceHorizontal(cellWidth, lipgloss.Center, s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

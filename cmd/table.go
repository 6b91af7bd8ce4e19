package cmd

import (
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/vokabel/internal/ui/theme"
)

// cellFunc styles a body cell. It may return a zero style.
type cellFunc func(row, col int) lipgloss.Style

// newTable returns a borderless table whose columns are separated by two
// spaces. Header cells use the TUI's label style.
func newTable(headers []string, rows [][]string, cell cellFunc) *table.Table {
	last := 0
	if len(headers) > 0 {
		last = len(headers) - 1
	} else if len(rows) > 0 {
		last = len(rows[0]) - 1
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			case cell != nil:
				s = cell(row, col)
			default:
				s = lipgloss.NewStyle()
			}
			if col < last {
				s = s.PaddingRight(2)
			}
			return s
		})
}

// printTable writes t to w. Colors are dropped when w is not a terminal.
func printTable(w io.Writer, t *table.Table) error {
	_, err := lipgloss.Fprintln(w, t.Render())
	return err
}

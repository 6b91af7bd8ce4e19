package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/ui/theme"
)

// Choice is a single-line selector over a fixed list of options, moved
// with the left and right keys.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewChoice creates a choice with the first option selected.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options}
}

// Focus focuses the choice.
func (c *Choice) Focus() { c.focused = true }

// Blur removes focus from the choice.
func (c *Choice) Blur() { c.focused = false }

// Focused reports whether the choice has focus.
func (c Choice) Focused() bool { return c.focused }

// Value returns the selected option, or "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// Select selects the option equal to value. It reports whether one matched.
func (c *Choice) Select(value string) bool {
	for i, o := range c.Options {
		if strings.EqualFold(o, value) {
			c.Selected = i
			return true
		}
	}
	return false
}

// Update handles left/right navigation while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.focused || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// View renders the label and every option, highlighting the selection.
func (c Choice) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.focused {
		label = theme.Label
	}

	parts := make([]string, 0, len(c.Options))
	for i, o := range c.Options {
		switch {
		case i == c.Selected && c.focused:
			parts = append(parts, theme.Selected.Render("‹ "+o+" ›"))
		case i == c.Selected:
			parts = append(parts, theme.Unselected.Bold(true).Render(o))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(o))
		}
	}
	return label.Render(c.Label+":") + " " + strings.Join(parts, "  ")
}

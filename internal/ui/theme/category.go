package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/vocab"
)

// CategoryStyle returns the style used to print a learning category.
func CategoryStyle(c vocab.Category) lipgloss.Style {
	switch c {
	case vocab.CategoryCorrect:
		return Correct
	case vocab.CategoryIncorrect:
		return Incorrect
	default:
		return Fresh
	}
}

// GenderColor returns the color for a noun's gender, or Text when unset.
func GenderColor(g vocab.Gender) color.Color {
	switch g {
	case vocab.Masculine:
		return Masculine
	case vocab.Feminine:
		return Feminine
	case vocab.Neutral:
		return Neutral
	default:
		return Text
	}
}

package views

import (
	"strings"

	"github.com/rivo/tview"
)

// sanitizeForTerminal drops codepoints that tcell renders with the wrong
// width: skin tone modifiers, zero width joiners and variation selectors.
// Control characters other than newline become spaces.
func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x1F3FB && r <= 0x1F3FF,
			r == 0x200D,
			r >= 0xFE00 && r <= 0xFE0F,
			r >= 0xE0100 && r <= 0xE01EF:
			return -1
		case r == '\n':
			return r
		case r < 0x20 || r == 0x7F:
			return ' '
		}
		return r
	}, s)
}

// display prepares untrusted text for a dynamic-color tview widget.
func display(s string) string {
	return tview.Escape(sanitizeForTerminal(s))
}

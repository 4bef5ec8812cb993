package ui

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/gdamore/tcell/v2"
)

// AvatarPalette is the fixed set of avatar background colors.
var AvatarPalette = []tcell.Color{
	tcell.NewHexColor(0x1976d2), // blue
	tcell.NewHexColor(0x388e3c), // green
	tcell.NewHexColor(0xf57c00), // orange
	tcell.NewHexColor(0xd32f2f), // red
	tcell.NewHexColor(0x7b1fa2), // purple
	tcell.NewHexColor(0x303f9f), // indigo
	tcell.NewHexColor(0xc2185b), // pink
	tcell.NewHexColor(0xff6f00), // deep orange
	tcell.NewHexColor(0x2e7d32), // dark green
	tcell.NewHexColor(0x1565c0), // dark blue
	tcell.NewHexColor(0x6a1b9a), // dark purple
	tcell.NewHexColor(0xc62828), // dark red
}

// AvatarIndex maps name to a stable palette index. The hash walks UTF-16
// code units with h = c + (int32(h)<<5 - h), so names hash the same as in
// the web client.
func AvatarIndex(name string) int {
	var h int64
	for _, c := range utf16.Encode([]rune(name)) {
		h = int64(c) + (int64(int32(h)<<5) - h)
	}
	if h < 0 {
		h = -h
	}
	return int(h % int64(len(AvatarPalette)))
}

// AvatarColor returns the palette color for name.
func AvatarColor(name string) tcell.Color {
	return AvatarPalette[AvatarIndex(name)]
}

// Initials returns the uppercased first letter of up to the first two
// whitespace-separated words of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		if n == 2 {
			break
		}
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
		n++
	}
	return b.String()
}

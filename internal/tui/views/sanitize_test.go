package views

import "testing"

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Привет!", "Привет!"},
		{"skin tone", "\U0001F44D\U0001F3FB", "\U0001F44D"},
		{"zwj family", "\U0001F468\u200D\U0001F469", "\U0001F468\U0001F469"},
		{"variation selector", "\u2764\uFE0F", "\u2764"},
		{"tab and bell", "a\tb\a", "a b "},
		{"newline kept", "a\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeForTerminal(tt.in); got != tt.want {
				t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplayEscapesTags(t *testing.T) {
	if got := display("[red]x"); got != "[red[]x" {
		t.Errorf("display() = %q", got)
	}
}

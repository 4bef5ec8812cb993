package ui

import (
	"strings"
	"testing"
)

func TestLogoMarkup(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		name      string
		online    bool
		unread    int
		color     string
		wantBadge bool
	}{
		{"offline", false, 0, ColorName(theme.OfflineColor), false},
		{"online", true, 0, ColorName(theme.OnlineColor), false},
		{"online with unread", true, 7, ColorName(theme.OnlineColor), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logoMarkup(theme, tt.online, tt.unread)
			if n := strings.Count(got, "["+tt.color+"::b]"); n != len(logoArt) {
				t.Errorf("art lines in %q = %d, want %d", tt.color, n, len(logoArt))
			}
			if hasBadge := strings.Contains(got, "✉"); hasBadge != tt.wantBadge {
				t.Errorf("badge shown = %v, want %v: %q", hasBadge, tt.wantBadge, got)
			}
			if tt.wantBadge && !strings.Contains(got, "✉ 7") {
				t.Errorf("badge missing count: %q", got)
			}
		})
	}
}

func TestLogoUpdate(t *testing.T) {
	l := NewLogo(DefaultTheme())
	l.Update(true, 3)
	if !strings.Contains(l.GetText(false), "✉ 3") {
		t.Errorf("text = %q", l.GetText(false))
	}
	l.Update(false, 0)
	if strings.Contains(l.GetText(false), "✉") {
		t.Errorf("badge kept after unread cleared: %q", l.GetText(false))
	}
}

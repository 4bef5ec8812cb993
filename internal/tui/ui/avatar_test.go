package ui

import "testing"

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Алёна", "А"},
		{"иван петров", "ИП"},
		{"Anna Maria Lopez", "AM"},
		{"  spaced   out  ", "SO"},
		{"", ""},
		{"x", "X"},
	}
	for _, tt := range tests {
		if got := Initials(tt.name); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAvatarIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		// "a": h = 97.
		{"a", 97 % 12},
		// "ab": h = 98 + (97<<5 - 97) = 3105.
		{"ab", 3105 % 12},
		{"", 0},
	}
	for _, tt := range tests {
		if got := AvatarIndex(tt.name); got != tt.want {
			t.Errorf("AvatarIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAvatarColorStable(t *testing.T) {
	for _, name := range []string{"Алёна", "Марина", "Иван", "a very long name that overflows the hash several times"} {
		idx := AvatarIndex(name)
		if idx < 0 || idx >= len(AvatarPalette) {
			t.Fatalf("AvatarIndex(%q) = %d out of range", name, idx)
		}
		if AvatarColor(name) != AvatarColor(name) {
			t.Errorf("AvatarColor(%q) not stable", name)
		}
		if AvatarColor(name) != AvatarPalette[idx] {
			t.Errorf("AvatarColor(%q) does not match its index", name)
		}
	}
}

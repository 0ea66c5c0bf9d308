package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Phones & Tablets", "phones-tablets"},
		{"  Air Fryer 5.5L ", "air-fryer-5-5l"},
		{"ALREADY-GOOD", "already-good"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

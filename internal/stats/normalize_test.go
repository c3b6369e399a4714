package stats

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "Morgan", want: "Morgan"},
		{name: "trims whitespace", raw: "  Alex  ", want: "Alex"},
		{name: "not applicable", raw: "not applicable", want: ""},
		{name: "placeholder any case", raw: "Not Applicable", want: ""},
		{name: "n/a", raw: "n/a", want: ""},
		{name: "na", raw: "NA", want: ""},
		{name: "not available", raw: "not available", want: ""},
		{name: "empty", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.raw); got != tt.want {
				t.Fatalf("CleanName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanName_Idempotent(t *testing.T) {
	for _, raw := range []string{"Morgan", " spaced ", "n/a", ""} {
		once := CleanName(raw)
		if twice := CleanName(once); twice != once {
			t.Fatalf("CleanName not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name   string
		given  string
		family string
		want   string
	}{
		{name: "both parts", given: "Alex", family: "Morgan", want: "Alex Morgan"},
		{name: "placeholder given", given: "not applicable", family: "Morgan", want: "Morgan"},
		{name: "placeholder family", given: "Pelé", family: "n/a", want: "Pelé"},
		{name: "both placeholders", given: "n/a", family: "not available", want: "Unknown"},
		{name: "both empty", given: "", family: "", want: "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FullName(tt.given, tt.family); got != tt.want {
				t.Fatalf("FullName(%q, %q) = %q, want %q", tt.given, tt.family, got, tt.want)
			}
		})
	}
}

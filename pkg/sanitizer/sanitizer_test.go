package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  limping on front leg  ",
			want:  "limping on front leg",
		},
		{
			name:  "multiple spaces between words",
			input: "limping    on front   leg",
			want:  "limping on front leg",
		},
		{
			name:  "tabs and newlines",
			input: "limping\t\non front leg",
			want:  "limping on front leg",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and strip spaces",
			input: "New York",
			want:  "newyork",
		},
		{
			name:  "hyphens removed",
			input: "tel-aviv",
			want:  "telaviv",
		},
		{
			name:  "digits removed",
			input: "area51",
			want:  "area",
		},
		{
			name:  "unicode letters preserved",
			input: "São Paulo",
			want:  "sãopaulo",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCity(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeCity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpecialization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "words joined with underscore",
			input: "Exotic Animals",
			want:  "exotic_animals",
		},
		{
			name:  "punctuation collapsed",
			input: "surgery -- orthopedic",
			want:  "surgery_orthopedic",
		},
		{
			name:  "leading and trailing separators trimmed",
			input: " /dermatology/ ",
			want:  "dermatology",
		},
		{
			name:  "single word",
			input: "Cardiology",
			want:  "cardiology",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSpecialization(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSpecialization(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpecializations_Dedup(t *testing.T) {
	got := NormalizeSpecializations([]string{"Surgery", "surgery", " SURGERY ", "Dermatology", ""})

	if len(got) != 2 {
		t.Fatalf("expected 2 unique specializations, got %v", got)
	}
	if got[0] != "surgery" || got[1] != "dermatology" {
		t.Errorf("expected order-preserving dedup, got %v", got)
	}
}

func TestNormalizeExceptions(t *testing.T) {
	got := NormalizeExceptions([]string{" 2026-05-01 ", "2026-05-01", "2026-04-01", "  "})

	if len(got) != 2 {
		t.Fatalf("expected 2 unique dates, got %v", got)
	}
	if got[0] != "2026-05-01" || got[1] != "2026-04-01" {
		t.Errorf("expected trimmed deduplicated dates, got %v", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Dana.Levi@Example.COM "); got != "dana.levi@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "us number with spaces",
			input: "+1 212 555 0143",
			want:  "+12125550143",
		},
		{
			name:  "already e164",
			input: "+12125550143",
			want:  "+12125550143",
		},
		{
			name:  "unparseable",
			input: "not a phone",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

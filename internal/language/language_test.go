package language

import (
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		code2 string
		code3 string
		name  string
	}{
		{"en", "en", "eng", "English"},
		{"eng", "en", "eng", "English"},
		{"English", "en", "eng", "English"},
		{"FRENCH", "fr", "fra", "French"},
		{"fre", "fr", "fra", "French"},
		{"ger", "de", "deu", "German"},
		{" ja ", "ja", "jpn", "Japanese"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.input, err)
			}
			if lang.Code2 != tt.code2 || lang.Code3 != tt.code3 || lang.Display != tt.name {
				t.Errorf("Resolve(%q) = %+v, want {%s %s %s}", tt.input, lang, tt.code2, tt.code3, tt.name)
			}
		})
	}
}

func TestResolveRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "  ", "klingon", "xx1"} {
		if _, err := Resolve(input); err == nil {
			t.Errorf("Resolve(%q) should fail", input)
		}
	}
}

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"fre", "fr"},
		{"fra", "fr"},
		{"ger", "de"},
		{"english", "en"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Unknown 3-letter returns empty
		{"xyz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO2(tt.input); result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"fr", "fra"},
		{"zho", "zho"},
		{"chi", "zho"},
		// Unknown 3-letter passes through
		{"qaa", "qaa"},
		// Unknown 2-letter maps to undetermined
		{"xy", "und"},
		{"", "und"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO3(tt.input); result != tt.expected {
				t.Errorf("ToISO3(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"deu", "German"},
		{"", "Unknown"},
		{"xx", "XX"},
	}
	for _, tt := range tests {
		if result := DisplayName(tt.input); result != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"lowercase key", map[string]string{"language": "eng"}, "eng"},
		{"uppercase key", map[string]string{"LANGUAGE": "FRA"}, "fra"},
		{"ietf key", map[string]string{"language_ietf": "en-US"}, "en-us"},
		{"nul bytes stripped", map[string]string{"language": "eng\x00"}, "eng"},
		{"empty tags", nil, ""},
		{"no language key", map[string]string{"title": "Director Commentary"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ExtractFromTags(tt.tags); result != tt.expected {
				t.Errorf("ExtractFromTags = %q, want %q", result, tt.expected)
			}
		})
	}
}

package language_test

import (
	"testing"

	"revoice/internal/language"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"en", "en", true},
		{"EN", "en", true},
		{"en-US", "en", true},
		{"zh", "zh-CN", true},
		{"zh-cn", "zh-CN", true},
		{"ta", "ta", true},
		{"xx", "", false},
		{"", "", false},
		{"not a code", "", false},
	}
	for _, tc := range cases {
		got, ok := language.Normalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSupportedSortedByName(t *testing.T) {
	langs := language.Supported()
	if len(langs) != 16 {
		t.Fatalf("expected 16 supported languages, got %d", len(langs))
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1].Name > langs[i].Name {
			t.Fatalf("languages not sorted: %q before %q", langs[i-1].Name, langs[i].Name)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := language.DisplayName("es"); got != "Spanish" {
		t.Fatalf("DisplayName(es) = %q", got)
	}
	if got := language.DisplayName("zz"); got != "ZZ" {
		t.Fatalf("DisplayName(zz) = %q", got)
	}
	if got := language.DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(empty) = %q", got)
	}
}

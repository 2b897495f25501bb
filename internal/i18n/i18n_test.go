package i18n

import "testing"

func TestEveryKeyTranslated(t *testing.T) {
	for key := range resources[English] {
		if _, ok := resources[Arabic][key]; !ok {
			t.Errorf("missing arabic text for %s", key)
		}
	}
	for key := range resources[Arabic] {
		if _, ok := resources[English][key]; !ok {
			t.Errorf("missing english text for %s", key)
		}
	}
}

func TestLookupFallsBack(t *testing.T) {
	c := Lookup(Language("fr"))
	if c.Language != English {
		t.Fatalf("expected english fallback, got %s", c.Language)
	}
	if got := T(Arabic, Key("no.such.key")); got != "no.such.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
	if Lookup(Arabic).Direction != "rtl" || Lookup(English).Direction != "ltr" {
		t.Fatalf("unexpected directions")
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   Language
	}{
		{"", English},
		{"ar-SA,ar;q=0.9,en;q=0.8", Arabic},
		{"en-US,en;q=0.9", English},
		{"fr-FR", English},
		{"de;q=0.9, ar;q=0.5", Arabic},
	}
	for _, tc := range cases {
		if got := FromAcceptLanguage(tc.header); got != tc.want {
			t.Errorf("FromAcceptLanguage(%q) = %s, want %s", tc.header, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	if l, ok := Parse("ar"); !ok || l != Arabic {
		t.Fatalf("expected arabic, got %s %v", l, ok)
	}
	if l, ok := Parse("EN-gb"); !ok || l != English {
		t.Fatalf("expected english, got %s %v", l, ok)
	}
	if _, ok := Parse("tr"); ok {
		t.Fatalf("expected unsupported language to be rejected")
	}
}

package formats

import (
	"testing"

	"github.com/goliatone/go-addressformat/internal/definitions"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"en_US":      "en-US",
		"en-US":      "en-US",
		"zh_Hant_TW": "zh-Hant-TW",
		"EN_us":      "EN-us",
		"":           "",
	}
	for input, want := range cases {
		if got := NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTranslateLeavesBaseUntouched(t *testing.T) {
	base := usDefinition()
	merged := translate(base, "en_US")
	if merged == base {
		t.Fatal("expected a merged copy")
	}
	if base.Locale != nil {
		t.Fatalf("expected base locale unset, got %q", *base.Locale)
	}
	if *base.Format != "{name}\n{address1}\n{city}, {state} {zip}" {
		t.Fatalf("expected base format untouched, got %q", *base.Format)
	}
	if merged.Locale == nil || *merged.Locale != "en-US" {
		t.Fatalf("expected merged locale en-US, got %v", merged.Locale)
	}
}

func TestTranslateWithoutMatchReturnsInput(t *testing.T) {
	base := usDefinition()
	if got := translate(base, ""); got != base {
		t.Fatal("empty locale should return input")
	}
	if got := translate(base, "en"); got != base {
		t.Fatal("missing translation should return input")
	}
}

func TestTranslateKeepsRawLocaleWhenUntranslated(t *testing.T) {
	base := defaultDefinition()
	base.Locale = definitions.String("und")
	format, err := construct(translate(base, "fr"))
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if format.LocaleTag() != "und" {
		t.Fatalf("expected raw locale to be kept, got %q", format.LocaleTag())
	}
}

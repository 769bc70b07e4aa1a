package format

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestPriceTag(t *testing.T) {
	if got := PriceTag("nl"); got != language.MustParse("nl-BE") {
		t.Fatalf("nl: got %v", got)
	}
	for _, l := range []string{"fr", "en", ""} {
		if got := PriceTag(l); got != language.MustParse("fr-BE") {
			t.Fatalf("%q: got %v", l, got)
		}
	}
}

func TestPriceLocalizesDecimals(t *testing.T) {
	nl := Price(499, "EUR", "nl")
	if !strings.Contains(nl, "499,00") {
		t.Fatalf("nl price %q missing comma decimals", nl)
	}
	fr := Price(499, "EUR", "fr")
	if !strings.Contains(fr, "499,00") {
		t.Fatalf("fr price %q missing comma decimals", fr)
	}
	if nl == fr {
		t.Fatalf("expected different symbol placement, both %q", nl)
	}
}

func TestPriceUnknownCurrencyKeepsCode(t *testing.T) {
	got := Price(10, "xyz", "nl")
	if !strings.HasPrefix(got, "XYZ ") {
		t.Fatalf("got %q", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := Date(d, "nl"); got != "09/03/2025" {
		t.Fatalf("nl: %q", got)
	}
	if got := Date(d, "en"); got != "Mar 9, 2025" {
		t.Fatalf("en: %q", got)
	}
}

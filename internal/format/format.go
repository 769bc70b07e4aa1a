package format

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	dutchBelgium  = language.MustParse("nl-BE")
	frenchBelgium = language.MustParse("fr-BE")
)

// PriceTag returns the formatting tag for a page locale. Dutch pages use
// nl-BE conventions; every other locale is rendered with fr-BE.
func PriceTag(locale string) language.Tag {
	if strings.EqualFold(strings.TrimSpace(locale), "nl") {
		return dutchBelgium
	}
	return frenchBelgium
}

// Price formats amount in major units with two decimals.
// Example: Price(499, "EUR", "nl") => "€ 499,00"; Price(499, "EUR", "fr") => "499,00 €".
func Price(amount float64, code, locale string) string {
	tag := PriceTag(locale)
	p := message.NewPrinter(tag)
	digits := p.Sprint(number.Decimal(amount, number.Scale(2)))

	code = strings.ToUpper(strings.TrimSpace(code))
	sym := code
	if unit, err := currency.ParseISO(code); err == nil {
		sym = p.Sprint(currency.NarrowSymbol(unit))
	}
	if sym == "" {
		return digits
	}
	if tag == dutchBelgium {
		return sym + " " + digits
	}
	return digits + " " + sym
}

// Date formats t in a short locale-friendly form.
func Date(t time.Time, locale string) string {
	switch strings.ToLower(locale) {
	case "nl", "fr":
		return t.Format("02/01/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

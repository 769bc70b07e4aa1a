// Package locations is the static directory of physical stores.
package locations

import (
	"strings"

	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
)

// Store is one physical shop.
type Store struct {
	ID       string
	Name     string
	Address  string
	City     string
	Phone    string
	Email    string
	WhatsApp string
	Hours    i18n.LocalizedString
	MapURL   string
	MapEmbed string
}

// WhatsAppDigits strips everything but digits from the WhatsApp number.
func (s Store) WhatsAppDigits() string {
	var b strings.Builder
	for _, r := range s.WhatsApp {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Directory resolves store ids to records.
type Directory struct {
	stores map[string]Store
}

// NewDirectory builds a directory from records keyed by their ID.
func NewDirectory(stores ...Store) *Directory {
	d := &Directory{stores: make(map[string]Store, len(stores))}
	for _, s := range stores {
		d.stores[s.ID] = s
	}
	return d
}

// Lookup returns the store with id.
func (d *Directory) Lookup(id string) (Store, bool) {
	s, ok := d.stores[id]
	return s, ok
}

// Resolve maps ids to stores in the given order, dropping unknown ids.
func (d *Directory) Resolve(ids []string) []Store {
	out := make([]Store, 0, len(ids))
	for _, id := range ids {
		if s, ok := d.stores[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

var hours = i18n.LocalizedString{
	"nl": "Ma-Za: 10:00 - 18:00",
	"fr": "Lun-Sam: 10:00 - 18:00",
	"en": "Mon-Sat: 10:00 - 18:00",
}

// Default returns the Pomandi shops.
func Default() *Directory {
	return NewDirectory(
		Store{
			ID:       "brasschaat",
			Name:     "Pomandi Brasschaat",
			Address:  "Bredabaan 299",
			City:     "2930 Brasschaat",
			Phone:    "+32 3 369 60 12",
			WhatsApp: "+32489107182",
			Email:    "info@pomandi.com",
			Hours:    hours,
			MapURL:   "https://maps.google.com/?q=Bredabaan+299,+2930+Brasschaat",
			MapEmbed: "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d2497.0!2d4.4912!3d51.2917!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x47c4094b1c15f5e1%3A0x4a5c0b8c4d5e6f7g!2sBredabaan%20299%2C%202930%20Brasschaat!5e0!3m2!1snl!2sbe!4v1234567890",
		},
		Store{
			ID:       "genk",
			Name:     "Pomandi Genk",
			Address:  "Vennestraat 331",
			City:     "3600 Genk",
			Phone:    "+32 489 10 71 82",
			WhatsApp: "+32489107182",
			Email:    "info@pomandi.com",
			Hours:    hours,
			MapURL:   "https://maps.google.com/?q=Vennestraat+331,+3600+Genk",
			MapEmbed: "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d2497.0!2d5.5012!3d50.9617!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x47c4094b1c15f5e1%3A0x4a5c0b8c4d5e6f7g!2sVennestraat%20331%2C%203600%20Genk!5e0!3m2!1snl!2sbe!4v1234567890",
		},
	)
}

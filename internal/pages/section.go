package pages

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
)

// SectionKind discriminates the section union.
type SectionKind string

const (
	KindProducts     SectionKind = "products"
	KindFeatures     SectionKind = "features"
	KindFAQ          SectionKind = "faq"
	KindStores       SectionKind = "stores"
	KindTestimonials SectionKind = "testimonials"
	KindCTA          SectionKind = "cta"
	KindQuote        SectionKind = "quote"
	KindPricing      SectionKind = "pricing"
	KindTimeline     SectionKind = "timeline"
	KindGallery      SectionKind = "gallery"
	KindStats        SectionKind = "stats"
	KindStyleGuide   SectionKind = "style-guide"
	KindSplitContent SectionKind = "split-content"
	KindUSPStrip     SectionKind = "usp-strip"
)

// SectionBody is the kind-specific payload of a section.
type SectionBody interface {
	Kind() SectionKind
}

// Section is one block of a page. Body is nil when the kind is not recognised or its
// config could not be decoded; such sections render nothing.
type Section struct {
	Kind       SectionKind
	ID         string
	Title      i18n.LocalizedString
	Subtitle   i18n.LocalizedString
	Animation  Animation
	Background Background
	Body       SectionBody

	raw       json.RawMessage
	decodeErr error
}

// DecodeErr returns the error hit while decoding the config of a known kind.
func (s Section) DecodeErr() error { return s.decodeErr }

type sectionEnvelope struct {
	Type       SectionKind          `json:"type"`
	ID         string               `json:"id"`
	Title      i18n.LocalizedString `json:"title,omitempty"`
	Subtitle   i18n.LocalizedString `json:"subtitle,omitempty"`
	Animation  Animation            `json:"animation,omitempty"`
	Background Background           `json:"background,omitempty"`
	Config     json.RawMessage      `json:"config,omitempty"`
}

var bodyFactories = map[SectionKind]func() SectionBody{
	KindProducts:     func() SectionBody { return &ProductsConfig{} },
	KindFeatures:     func() SectionBody { return &FeaturesConfig{} },
	KindFAQ:          func() SectionBody { return &FAQConfig{} },
	KindStores:       func() SectionBody { return &StoresConfig{} },
	KindTestimonials: func() SectionBody { return &TestimonialsConfig{} },
	KindCTA:          func() SectionBody { return &CTAConfig{} },
	KindQuote:        func() SectionBody { return &QuoteConfig{} },
	KindPricing:      func() SectionBody { return &PricingConfig{} },
	KindTimeline:     func() SectionBody { return &TimelineConfig{} },
	KindGallery:      func() SectionBody { return &GalleryConfig{} },
	KindStats:        func() SectionBody { return &StatsConfig{} },
	KindStyleGuide:   func() SectionBody { return &StyleGuideConfig{} },
	KindSplitContent: func() SectionBody { return &SplitContentConfig{} },
	KindUSPStrip:     func() SectionBody { return &USPStripConfig{} },
}

// KnownKind reports whether k is part of the section schema.
func KnownKind(k SectionKind) bool {
	_, ok := bodyFactories[k]
	return ok
}

// UnmarshalJSON decodes the envelope and dispatches the config payload on the type tag.
// Unrecognised kinds decode without error and keep a nil Body. A config that does not
// fit its kind leaves Body nil and is reported by DecodeErr, so one bad section never
// fails the page.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*s = Section{
		Kind:       env.Type,
		ID:         env.ID,
		Title:      env.Title,
		Subtitle:   env.Subtitle,
		Animation:  env.Animation,
		Background: env.Background,
		raw:        env.Config,
	}

	factory, ok := bodyFactories[env.Type]
	if !ok {
		return nil
	}
	body := factory()
	if len(env.Config) > 0 && !bytes.Equal(bytes.TrimSpace(env.Config), []byte("null")) {
		if err := json.Unmarshal(env.Config, body); err != nil {
			s.decodeErr = fmt.Errorf("section %q (%s): %w", env.ID, env.Type, err)
			return nil
		}
	}
	s.Body = body
	return nil
}

// MarshalJSON writes the section back in its tagged form.
func (s Section) MarshalJSON() ([]byte, error) {
	env := sectionEnvelope{
		Type:       s.Kind,
		ID:         s.ID,
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		Animation:  s.Animation,
		Background: s.Background,
		Config:     s.raw,
	}
	if s.Body != nil {
		cfg, err := json.Marshal(s.Body)
		if err != nil {
			return nil, err
		}
		env.Config = cfg
	}
	return json.Marshal(env)
}

// ProductsConfig shows a product grid for one collection.
type ProductsConfig struct {
	Collection string `json:"collection"`
	Limit      int    `json:"limit,omitempty"`
	Style      string `json:"style,omitempty"`
	Columns    int    `json:"columns,omitempty"`
	ShowPrice  bool   `json:"showPrice,omitempty"`
}

// Kind implements SectionBody.
func (*ProductsConfig) Kind() SectionKind { return KindProducts }

// FeatureItem is one feature tile.
type FeatureItem struct {
	Icon        string               `json:"icon,omitempty"`
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedString `json:"description"`
}

// FeaturesConfig shows a grid of feature tiles.
type FeaturesConfig struct {
	Columns int           `json:"columns,omitempty"`
	Style   string        `json:"style,omitempty"`
	Items   []FeatureItem `json:"items"`
}

// Kind implements SectionBody.
func (*FeaturesConfig) Kind() SectionKind { return KindFeatures }

// FAQItem is a question with its answer. Answers may contain Markdown.
type FAQItem struct {
	Question i18n.LocalizedString `json:"question"`
	Answer   i18n.LocalizedString `json:"answer"`
}

// FAQConfig is an accordion of questions.
type FAQConfig struct {
	Items []FAQItem `json:"items"`
}

// Kind implements SectionBody.
func (*FAQConfig) Kind() SectionKind { return KindFAQ }

// StoresConfig lists store ids to show.
type StoresConfig struct {
	Locations    []string `json:"locations"`
	Style        string   `json:"style,omitempty"`
	ShowMap      bool     `json:"showMap,omitempty"`
	ShowHours    bool     `json:"showHours,omitempty"`
	ShowWhatsApp bool     `json:"showWhatsApp,omitempty"`
}

// Kind implements SectionBody.
func (*StoresConfig) Kind() SectionKind { return KindStores }

// TestimonialItem is one customer review.
type TestimonialItem struct {
	Quote    i18n.LocalizedString `json:"quote"`
	Author   string               `json:"author"`
	Location string               `json:"location,omitempty"`
	Rating   int                  `json:"rating,omitempty"`
}

// TestimonialsConfig shows customer reviews.
type TestimonialsConfig struct {
	Items []TestimonialItem `json:"items"`
	Style string            `json:"style,omitempty"`
}

// Kind implements SectionBody.
func (*TestimonialsConfig) Kind() SectionKind { return KindTestimonials }

// CTAConfig is a closing call to action.
type CTAConfig struct {
	Title    i18n.LocalizedString `json:"title"`
	Subtitle i18n.LocalizedString `json:"subtitle,omitempty"`
	Button   CTAButton            `json:"button"`
	Style    string               `json:"style,omitempty"`
}

// Kind implements SectionBody.
func (*CTAConfig) Kind() SectionKind { return KindCTA }

// QuoteConfig is a single highlighted quote.
type QuoteConfig struct {
	Text   i18n.LocalizedString `json:"text"`
	Author i18n.LocalizedString `json:"author,omitempty"`
	Style  string               `json:"style,omitempty"`
}

// Kind implements SectionBody.
func (*QuoteConfig) Kind() SectionKind { return KindQuote }

// PricingItem carries a display price string; it is not parsed.
type PricingItem struct {
	Name        i18n.LocalizedString `json:"name"`
	Price       string               `json:"price"`
	Description i18n.LocalizedString `json:"description,omitempty"`
}

// PricingConfig lists indicative prices with an optional note.
type PricingConfig struct {
	Items []PricingItem        `json:"items"`
	Note  i18n.LocalizedString `json:"note,omitempty"`
}

// Kind implements SectionBody.
func (*PricingConfig) Kind() SectionKind { return KindPricing }

// TimelineItem is one dated milestone.
type TimelineItem struct {
	Year        string               `json:"year"`
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedString `json:"description"`
	Image       string               `json:"image,omitempty"`
}

// TimelineConfig shows milestones in order.
type TimelineConfig struct {
	Items []TimelineItem `json:"items"`
	Style string         `json:"style,omitempty"`
}

// Kind implements SectionBody.
func (*TimelineConfig) Kind() SectionKind { return KindTimeline }

// GalleryConfig shows a set of images.
type GalleryConfig struct {
	Images   []string `json:"images"`
	Layout   string   `json:"layout,omitempty"`
	Lightbox bool     `json:"lightbox,omitempty"`
	Columns  int      `json:"columns,omitempty"`
}

// Kind implements SectionBody.
func (*GalleryConfig) Kind() SectionKind { return KindGallery }

// StatItem is a headline figure with a label.
type StatItem struct {
	Value string               `json:"value"`
	Label i18n.LocalizedString `json:"label"`
}

// StatsConfig shows headline figures.
type StatsConfig struct {
	Items []StatItem `json:"items"`
}

// Kind implements SectionBody.
func (*StatsConfig) Kind() SectionKind { return KindStats }

// USPStripConfig is a narrow strip of selling points.
type USPStripConfig struct {
	Items []StatItem `json:"items"`
}

// Kind implements SectionBody.
func (*USPStripConfig) Kind() SectionKind { return KindUSPStrip }

// StyleGuideConfig is an editorial block of styling tips.
type StyleGuideConfig struct {
	Intro  i18n.LocalizedString   `json:"intro,omitempty"`
	Tips   []i18n.LocalizedString `json:"tips,omitempty"`
	Images []string               `json:"images,omitempty"`
	CTA    i18n.LocalizedString   `json:"cta,omitempty"`
}

// Kind implements SectionBody.
func (*StyleGuideConfig) Kind() SectionKind { return KindStyleGuide }

// SplitContentConfig pairs text with an image on one side.
type SplitContentConfig struct {
	Title         i18n.LocalizedString   `json:"title"`
	Description   i18n.LocalizedString   `json:"description"`
	Features      []i18n.LocalizedString `json:"features,omitempty"`
	Image         string                 `json:"image"`
	ImagePosition string                 `json:"imagePosition,omitempty"`
	CTA           *CTAButton             `json:"cta,omitempty"`
}

// Kind implements SectionBody.
func (*SplitContentConfig) Kind() SectionKind { return KindSplitContent }

package render

import (
	"html/template"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pomandi/pomandi-landing-pages/internal/format"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

const (
	defaultProductLimit = 8
	maxStyleImages      = 2
	styleMinimal        = "minimal"
)

// Section renders one section, or returns nil when the section produces no markup.
// Kinds without markup (testimonials, timeline, gallery, split-content, usp-strip) and
// unrecognised kinds are omitted.
func Section(c *Context, s pages.Section) templ.Component {
	switch body := s.Body.(type) {
	case *pages.ProductsConfig:
		return products(c, s, body)
	case *pages.FeaturesConfig:
		return features(c, s, body)
	case *pages.FAQConfig:
		return faq(c, s, body)
	case *pages.StoresConfig:
		return stores(c, s, body)
	case *pages.CTAConfig:
		return cta(c, s, body)
	case *pages.QuoteConfig:
		return quote(c, s, body)
	case *pages.PricingConfig:
		return pricing(c, s, body)
	case *pages.StatsConfig:
		return stats(c, s, body)
	case *pages.StyleGuideConfig:
		return styleGuide(c, s, body)
	default:
		return nil
	}
}

type header struct {
	Title    string
	Subtitle string
}

func (h header) Any() bool { return h.Title != "" || h.Subtitle != "" }

func (c *Context) header(s pages.Section) header {
	return header{Title: c.Text(s.Title), Subtitle: c.Text(s.Subtitle)}
}

type productCard struct {
	URL   string
	Name  string
	Image string
	Price string
}

type productsView struct {
	header
	ID           string
	Surface      surface
	ViewAllURL   string
	ViewAllLabel string
	GridClass    string
	Cards        []productCard
}

func products(c *Context, s pages.Section, cfg *pages.ProductsConfig) templ.Component {
	items := c.Products[cfg.Collection]
	if len(items) == 0 {
		return nil
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}

	v := productsView{
		header:       c.header(s),
		ID:           s.ID,
		Surface:      c.surface(s.Background),
		ViewAllURL:   c.CollectionURL(cfg.Collection),
		ViewAllLabel: c.T("products.view_all"),
		GridClass:    productColumns(cfg.Columns),
		Cards:        make([]productCard, 0, len(items)),
	}
	for _, p := range items {
		card := productCard{URL: c.ProductURL(p.Slug), Name: p.DisplayName()}
		if p.Thumbnail != nil {
			card.Image = p.Thumbnail.URL
		}
		if cfg.ShowPrice && p.Price != nil {
			card.Price = format.Price(p.Price.Amount, p.Price.Currency, c.Locale)
		}
		v.Cards = append(v.Cards, card)
	}
	return view("products", v)
}

func productColumns(n int) string {
	switch n {
	case 2:
		return "grid-cols-2"
	case 3:
		return "grid-cols-2 md:grid-cols-3"
	case 6:
		return "grid-cols-2 sm:grid-cols-3 lg:grid-cols-6"
	}
	return "grid-cols-2 md:grid-cols-4"
}

type feature struct {
	IconPath    string
	Title       string
	Description string
	Class       string
}

type featuresView struct {
	header
	ID        string
	Surface   surface
	GridClass string
	Items     []feature
}

func features(c *Context, s pages.Section, cfg *pages.FeaturesConfig) templ.Component {
	v := featuresView{
		header:    c.header(s),
		ID:        s.ID,
		Surface:   c.surface(s.Background),
		GridClass: featureColumns(cfg.Columns),
		Items:     make([]feature, 0, len(cfg.Items)),
	}
	for i, it := range cfg.Items {
		f := feature{
			IconPath:    iconPath(it.Icon),
			Title:       c.Text(it.Title),
			Description: c.Text(it.Description),
		}
		if s.Animation == pages.AnimationStagger {
			f.Class = "animate-fade-in-up animate-delay-" + strconv.Itoa((i+1)*100)
		}
		v.Items = append(v.Items, f)
	}
	return view("features", v)
}

func featureColumns(n int) string {
	switch n {
	case 2:
		return "md:grid-cols-2"
	case 4:
		return "md:grid-cols-4"
	}
	return "md:grid-cols-3"
}

var icons = map[string]string{
	"checkmark": "M5 13l4 4L19 7",
	"users":     "M17 20h5v-2a3 3 0 00-5.356-1.857M17 20H7m10 0v-2c0-.656-.126-1.283-.356-1.857M7 20H2v-2a3 3 0 015.356-1.857M7 20v-2c0-.656.126-1.283.356-1.857m0 0a5.002 5.002 0 019.288 0M15 7a3 3 0 11-6 0 3 3 0 016 0z",
	"money":     "M12 8c-1.657 0-3 .895-3 2s1.343 2 3 2 3 .895 3 2-1.343 2-3 2m0-8c1.11 0 2.08.402 2.599 1M12 8V7m0 1v8m0 0v1m0-1c-1.11 0-2.08-.402-2.599-1M21 12a9 9 0 11-18 0 9 9 0 0118 0z",
	"suit":      "M5 3v4M3 5h4M6 17v4m-2-2h4m5-16l2.286 6.857L21 12l-5.714 2.143L13 21l-2.286-6.857L5 12l5.714-2.143L13 3z",
	"clock":     "M12 8v4l3 3m6-3a9 9 0 11-18 0 9 9 0 0118 0z",
	"star":      "M11.049 2.927c.3-.921 1.603-.921 1.902 0l1.519 4.674a1 1 0 00.95.69h4.915c.969 0 1.371 1.24.588 1.81l-3.976 2.888a1 1 0 00-.363 1.118l1.518 4.674c.3.922-.755 1.688-1.538 1.118l-3.976-2.888a1 1 0 00-1.176 0l-3.976 2.888c-.783.57-1.838-.197-1.538-1.118l1.518-4.674a1 1 0 00-.363-1.118l-3.976-2.888c-.784-.57-.38-1.81.588-1.81h4.914a1 1 0 00.951-.69l1.519-4.674z",
}

// iconPath falls back to the checkmark for unknown or missing keys.
func iconPath(key string) string {
	if p, ok := icons[key]; ok {
		return p
	}
	return icons["checkmark"]
}

type faqEntry struct {
	Question string
	Answer   template.HTML
}

type faqView struct {
	header
	ID      string
	Surface surface
	Items   []faqEntry
}

func faq(c *Context, s pages.Section, cfg *pages.FAQConfig) templ.Component {
	v := faqView{header: c.header(s), ID: s.ID, Surface: c.surface(s.Background)}
	for _, it := range cfg.Items {
		v.Items = append(v.Items, faqEntry{
			Question: c.Text(it.Question),
			Answer:   Markdown(c.Text(it.Answer)),
		})
	}
	return view("faq", v)
}

type storeCard struct {
	ID             string
	Name           string
	Address        string
	City           string
	Phone          string
	Email          string
	Hours          string
	MapEmbed       string
	AppointmentURL string
	WhatsAppURL    string
}

type storesView struct {
	header
	ID      string
	Surface surface
	Labels  map[string]string
	Detail  *storeCard
	Cards   []storeCard
}

// stores shows a detail panel when exactly one store resolves, unless the minimal style
// is requested; otherwise a card per store.
func stores(c *Context, s pages.Section, cfg *pages.StoresConfig) templ.Component {
	resolved := c.Directory.Resolve(cfg.Locations)
	if len(resolved) == 0 {
		return nil
	}

	v := storesView{
		header:  c.header(s),
		ID:      s.ID,
		Surface: c.surface(s.Background),
		Labels: map[string]string{
			"visitUs":     c.T("stores.visit_us"),
			"address":     c.T("stores.address"),
			"whatsapp":    c.T("stores.whatsapp"),
			"email":       c.T("stores.email"),
			"hours":       c.T("stores.hours"),
			"appointment": c.T("stores.make_appointment"),
		},
	}
	detail := len(resolved) == 1 && cfg.Style != styleMinimal
	for _, st := range resolved {
		card := storeCard{
			ID:             st.ID,
			Name:           st.Name,
			Address:        st.Address,
			City:           st.City,
			Phone:          st.Phone,
			Email:          st.Email,
			AppointmentURL: c.AppointmentURL(st.ID),
		}
		if cfg.ShowHours {
			card.Hours = c.Text(st.Hours)
		}
		if cfg.ShowMap {
			card.MapEmbed = st.MapEmbed
		}
		if cfg.ShowWhatsApp {
			message := ""
			if detail {
				message = c.T("stores.whatsapp_message")
			}
			card.WhatsAppURL = WhatsAppURL(st.WhatsAppDigits(), message)
		}
		if detail {
			v.Detail = &card
			break
		}
		v.Cards = append(v.Cards, card)
	}
	return view("stores", v)
}

type ctaView struct {
	ID       string
	Surface  surface
	Title    string
	Subtitle string
	Button   link
}

func cta(c *Context, s pages.Section, cfg *pages.CTAConfig) templ.Component {
	return view("cta", ctaView{
		ID:       s.ID,
		Surface:  c.surface(s.Background),
		Title:    c.Text(cfg.Title),
		Subtitle: c.Text(cfg.Subtitle),
		Button: link{
			Href: firstNonEmpty(cfg.Button.Href, c.AppointmentURL(c.Store)),
			Text: c.Text(cfg.Button.Text),
		},
	})
}

type quoteView struct {
	ID             string
	Surface        surface
	AnimationClass string
	Text           string
	Author         string
}

func quote(c *Context, s pages.Section, cfg *pages.QuoteConfig) templ.Component {
	v := quoteView{
		ID:      s.ID,
		Surface: c.surface(s.Background),
		Text:    c.Text(cfg.Text),
		Author:  c.Text(cfg.Author),
	}
	if s.Animation == pages.AnimationFadeIn {
		v.AnimationClass = "animate-fade-in"
	}
	return view("quote", v)
}

type pricingRow struct {
	Name        string
	Price       string
	Description string
}

type pricingView struct {
	header
	ID          string
	Surface     surface
	AccentStyle template.CSS
	TintStyle   template.CSS
	ProductHead string
	PriceHead   string
	Rows        []pricingRow
	Note        string
}

func pricing(c *Context, s pages.Section, cfg *pages.PricingConfig) templ.Component {
	v := pricingView{
		header:      c.header(s),
		ID:          s.ID,
		Surface:     c.surface(s.Background),
		AccentStyle: template.CSS("color: " + c.Accent()),
		TintStyle:   tint(c.Accent(), "20"),
		ProductHead: c.T("pricing.product"),
		PriceHead:   c.T("pricing.price"),
		Note:        c.Text(cfg.Note),
	}
	for _, it := range cfg.Items {
		v.Rows = append(v.Rows, pricingRow{
			Name:        c.Text(it.Name),
			Price:       it.Price,
			Description: c.Text(it.Description),
		})
	}
	return view("pricing", v)
}

// tint returns a translucent background of colour using a two digit alpha suffix.
func tint(colour, alpha string) template.CSS {
	full, ok := expandHex(colour)
	if !ok {
		return ""
	}
	return template.CSS("background-color: " + full + alpha)
}

type statsView struct {
	ID      string
	Surface surface
	Items   []statItem
}

type statItem struct {
	Value string
	Label string
}

func stats(c *Context, s pages.Section, cfg *pages.StatsConfig) templ.Component {
	v := statsView{ID: s.ID, Surface: c.surface(s.Background)}
	for _, it := range cfg.Items {
		v.Items = append(v.Items, statItem{Value: it.Value, Label: c.Text(it.Label)})
	}
	return view("stats", v)
}

type styleGuideView struct {
	header
	ID          string
	Surface     surface
	AccentStyle template.CSS
	FrameStyle  template.CSS
	Images      []string
	Intro       template.HTML
	Tips        []string
	CTA         *link
}

func styleGuide(c *Context, s pages.Section, cfg *pages.StyleGuideConfig) templ.Component {
	accent := c.Accent()
	v := styleGuideView{
		header:      c.header(s),
		ID:          s.ID,
		Surface:     c.surface(s.Background),
		AccentStyle: template.CSS("color: " + accent + "; border-color: " + accent),
		Intro:       Markdown(c.Text(cfg.Intro)),
	}
	if full, ok := expandHex(accent); ok {
		v.FrameStyle = template.CSS("border-color: " + full + "33")
	}
	images := cfg.Images
	if len(images) > maxStyleImages {
		images = images[:maxStyleImages]
	}
	v.Images = images
	for _, tip := range cfg.Tips {
		if text := c.Text(tip); text != "" {
			v.Tips = append(v.Tips, text)
		}
	}
	if text := c.Text(cfg.CTA); text != "" {
		v.CTA = &link{Href: c.AppointmentURL(""), Text: text}
	}
	return view("style-guide", v)
}

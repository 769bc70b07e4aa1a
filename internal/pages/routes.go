package pages

import "sort"

// Route is one renderable (channel, slug) pair.
type Route struct {
	Channel string
	Slug    string
}

// Path returns the request path of the route.
func (r Route) Path() string {
	return "/" + r.Channel + "/" + r.Slug
}

// StaticRoutes enumerates every channel each configuration is published in, sorted by
// channel then slug. Configurations with an unknown template are left out since they
// cannot render.
func StaticRoutes(configs []PageConfig) []Route {
	var out []Route
	for _, cfg := range configs {
		if cfg.Slug == "" || !cfg.Template.Valid() {
			continue
		}
		for _, ch := range cfg.Channels {
			out = append(out, Route{Channel: ch, Slug: cfg.Slug})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Channel != out[j].Channel {
			return out[i].Channel < out[j].Channel
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

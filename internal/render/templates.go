package render

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var views = template.Must(template.New("render").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

// view renders the named template with data.
func view(name string, data any) templ.Component {
	return templ.FromGoHTML(views.Lookup(name), data)
}

// frame renders children first and hands the markup to the named template.
func frame(name string, children templ.Component, data func(body template.HTML) any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, children)
		if err != nil {
			return err
		}
		return views.ExecuteTemplate(w, name, data(body))
	})
}

// join renders components in order, skipping nil entries.
func join(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if p == nil {
				continue
			}
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

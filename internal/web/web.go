// Package web holds the HTML templates of the site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"time"

	"fyyur/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	Flashes []string
	Data    any
	Form    any
	Errors  map[string]string
	Action  string
	Images  bool
}

var pages = []string{
	"home",
	"venues",
	"venue",
	"venue_form",
	"artists",
	"artist",
	"artist_form",
	"search",
	"shows",
	"show_form",
	"404",
	"500",
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format("Mon Jan 2, 2006 3:04PM")
	},
	"inputTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"has": func(values []string, v string) bool {
		return slices.Contains(values, v)
	},
	"genres": func() []string { return models.Genres },
	"states": func() []string { return models.States },
}

type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses each page together with the shared layout.
func LoadTemplates() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

func (t *Templates) Render(w io.Writer, name string, page *Page) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", page)
}

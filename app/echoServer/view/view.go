// Package view renders the catalog pages from embedded html/template files.
// Every page is executed inside layout.html.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"locallibrary/model"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

const layout = "layout.html"

var funcs = template.FuncMap{
	"statuses": func() []model.BookInstanceStatus { return model.Statuses },
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, n := range names {
		base := path.Base(n)
		if base == layout {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(files, "templates/"+layout, n)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		r.pages[strings.TrimSuffix(base, ".html")] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Package views renders the portal's embedded HTML templates for Fiber.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Engine implements fiber.Views over html/template.
type Engine struct {
	once sync.Once
	tmpl *template.Template
	err  error
}

// New returns an engine; templates are parsed on Load.
func New() *Engine {
	return &Engine{}
}

// Load parses every embedded template once.
func (e *Engine) Load() error {
	e.once.Do(func() {
		e.tmpl, e.err = template.New("").Funcs(template.FuncMap{
			"year": func() int { return time.Now().Year() },
		}).ParseFS(templateFiles, "templates/*.html")
	})
	return e.err
}

// Render executes the template defined as name.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	if err := e.Load(); err != nil {
		return err
	}
	t := e.tmpl.Lookup(name)
	if t == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return t.Execute(w, binding)
}

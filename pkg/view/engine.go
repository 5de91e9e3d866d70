package view

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"
)

// Renderer renders a named template to a writer.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Engine renders html/template files resolved across layered filesystems.
// Safe for concurrent use.
type Engine struct {
	layers []fs.FS
	shared []string
	funcs  template.FuncMap
	ext    string

	cache sync.Map // name -> *template.Template
}

var _ Renderer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithFS appends a template filesystem layer. Layers registered earlier
// take precedence when the same file exists in several layers.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		if fsys != nil {
			e.layers = append(e.layers, fsys)
		}
	}
}

// WithShared adds glob patterns for partial templates parsed into every
// template set.
func WithShared(patterns ...string) Option {
	return func(e *Engine) {
		e.shared = append(e.shared, patterns...)
	}
}

// WithFuncs merges functions into the template function map.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// WithExtension overrides the file extension appended to template names.
// Defaults to ".html".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext != "" {
			e.ext = ext
		}
	}
}

// New creates a template engine. At least one filesystem layer must be
// added via WithFS for Render to succeed.
func New(opts ...Option) *Engine {
	e := &Engine{
		funcs: template.FuncMap{},
		ext:   ".html",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render executes the named template with the given data. The template is
// parsed on first use and cached for subsequent calls.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	tmpl, err := e.lookup(name)
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, path.Base(name)+e.ext, data)
}

func (e *Engine) lookup(name string) (*template.Template, error) {
	if cached, ok := e.cache.Load(name); ok {
		return cached.(*template.Template), nil
	}

	tmpl, err := e.parse(name)
	if err != nil {
		return nil, err
	}

	actual, _ := e.cache.LoadOrStore(name, tmpl)
	return actual.(*template.Template), nil
}

func (e *Engine) parse(name string) (*template.Template, error) {
	file := name + e.ext
	layer, ok := e.find(file)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, file)
	}

	tmpl := template.New(name).Funcs(e.funcs)

	// Shared partials come from the first layer matching each pattern,
	// mirroring the file lookup precedence.
	for _, pattern := range e.shared {
		for _, fsys := range e.layers {
			matches, err := fs.Glob(fsys, pattern)
			if err != nil {
				return nil, fmt.Errorf("view: glob %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				continue
			}
			if tmpl, err = tmpl.ParseFS(fsys, pattern); err != nil {
				return nil, fmt.Errorf("view: parse shared %q: %w", pattern, err)
			}
			break
		}
	}

	tmpl, err := tmpl.ParseFS(layer, file)
	if err != nil {
		return nil, fmt.Errorf("view: parse %q: %w", file, err)
	}
	return tmpl, nil
}

func (e *Engine) find(file string) (fs.FS, bool) {
	for _, fsys := range e.layers {
		if _, err := fs.Stat(fsys, file); err == nil {
			return fsys, true
		}
	}
	return nil, false
}

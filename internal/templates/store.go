package templates

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Name identifies a template definition.
type Name string

const (
	Modern   Name = "modern"
	Minimal  Name = "minimal"
	Creative Name = "creative"
)

// Names lists every template in a stable order.
var Names = []Name{Modern, Minimal, Creative}

//go:embed files
var files embed.FS

const (
	htmlFile = "index.html"
	cssFile  = "style.css"
	jsFile   = "script.js"
)

// Content holds the values substituted into an HTML skeleton.
// Title, Theme and Description are plain text and are HTML-escaped on
// substitution, so "Pan & Café" lands in the bundle as "Pan &amp; Café".
// Services is ready-made markup and is inserted verbatim.
type Content struct {
	Title       string
	Theme       string
	Description string
	Services    string
}

// Definition is one immutable template: an HTML skeleton with placeholders
// plus constant CSS and JS.
type Definition struct {
	Name     Name
	skeleton string
	css      string
	js       string
}

// CSS returns the template's stylesheet.
func (d Definition) CSS() string { return d.css }

// JS returns the template's script body.
func (d Definition) JS() string { return d.js }

// BuildHTML substitutes c into the skeleton's placeholders. Plain-text
// fields are escaped; see Content.
func (d Definition) BuildHTML(c Content) string {
	r := strings.NewReplacer(
		"{{title}}", html.EscapeString(c.Title),
		"{{description}}", html.EscapeString(c.Description),
		"{{theme}}", html.EscapeString(c.Theme),
		"{{services}}", c.Services,
	)
	return r.Replace(d.skeleton)
}

// Build assembles a complete bundle from this definition.
func (d Definition) Build(c Content) Bundle {
	return Bundle{
		Template: d.Name,
		HTML:     d.BuildHTML(c),
		CSS:      d.css,
		JS:       d.js,
	}
}

// Store holds the template definitions, keyed by name.
type Store struct {
	defs map[Name]Definition
}

// NewStore loads the embedded template definitions.
func NewStore() (*Store, error) {
	sub, err := fs.Sub(files, "files")
	if err != nil {
		return nil, fmt.Errorf("opening embedded templates: %w", err)
	}
	return LoadStore(sub)
}

// LoadStore reads template definitions from fsys, which must contain one
// directory per template with index.html, style.css and script.js.
func LoadStore(fsys fs.FS) (*Store, error) {
	matches, err := doublestar.Glob(fsys, "*/{"+htmlFile+","+cssFile+","+jsFile+"}")
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}

	parts := make(map[Name]map[string]string)
	for _, m := range matches {
		dir, file := path.Split(m)
		name := Name(strings.TrimSuffix(dir, "/"))
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", m, err)
		}
		if parts[name] == nil {
			parts[name] = make(map[string]string)
		}
		parts[name][file] = string(data)
	}

	s := &Store{defs: make(map[Name]Definition, len(Names))}
	for _, name := range Names {
		p, ok := parts[name]
		if !ok {
			return nil, fmt.Errorf("template %q not found", name)
		}
		for _, f := range []string{htmlFile, cssFile, jsFile} {
			if _, ok := p[f]; !ok {
				return nil, fmt.Errorf("template %q is missing %s", name, f)
			}
		}
		s.defs[name] = Definition{
			Name:     name,
			skeleton: p[htmlFile],
			css:      p[cssFile],
			js:       p[jsFile],
		}
	}
	return s, nil
}

// MustNewStore is like NewStore but panics on error. The embedded files are
// part of the binary, so failure here is a build defect.
func MustNewStore() *Store {
	s, err := NewStore()
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the definition for name. Unknown names fall back to Modern.
func (s *Store) Get(name Name) Definition {
	if d, ok := s.defs[name]; ok {
		return d
	}
	return s.defs[Modern]
}

// Package loader batch-validates a filesystem of XML documents. It is
// grounded on the same add-then-compile shape as a project-wide
// template compiler: files are collected from one or more fs.FS
// trees, then all of them are parsed in one pass.
//
// Unlike a dependency-aware compiler, XML documents validated here do
// not import one another, so there is no dependency graph to order:
// every document is independent and Load simply parses each one.
package loader

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/nilxml/xmltok/entity"
	"github.com/nilxml/xmltok/xmldoc"
)

// Loader collects named XML document sources to be parsed together.
type Loader struct {
	documents map[string]string
	entities  *entity.Table
}

// Option configures a Loader.
type Option func(*Loader)

// WithEntityTable overrides the entity table used to resolve
// character and entity references while parsing. The default is the
// five predefined XML entities.
func WithEntityTable(t *entity.Table) Option {
	return func(l *Loader) {
		if t != nil {
			l.entities = t
		}
	}
}

// New returns an empty Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		documents: make(map[string]string),
		entities:  entity.Predefined(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddFS walks fsys and adds every file with a ".xml" extension as a
// document, named by its path relative to fsys with the extension
// stripped.
func (l *Loader) AddFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		name := strings.TrimSuffix(path, ".xml")
		l.AddDocument(name, string(content))
		return nil
	})
}

// AddDocument registers a single document's raw source under name,
// overwriting any previously added document with the same name.
func (l *Loader) AddDocument(name, content string) {
	l.documents[name] = content
}

// Result is the outcome of loading every document a Loader collected.
type Result struct {
	// Documents holds the successfully parsed tree for every document
	// that validated without error.
	Documents map[string]*xmldoc.Document
	// Errors holds the failure for every document that did not.
	Errors map[string]error
}

// OK reports whether every added document parsed without error.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Load parses every added document independently and returns the
// aggregate result. A parse failure in one document never prevents
// the others from being attempted.
func (l *Loader) Load() *Result {
	result := &Result{
		Documents: make(map[string]*xmldoc.Document),
		Errors:    make(map[string]error),
	}

	names := make([]string, 0, len(l.documents))
	for name := range l.documents {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		doc, err := xmldoc.ParseString(l.documents[name], l.entities)
		if err != nil {
			result.Errors[name] = fmt.Errorf("parsing %s: %w", name, err)
			continue
		}
		result.Documents[name] = doc
	}

	return result
}

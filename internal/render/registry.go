package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/tempsuisse/platform/internal/cv"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// TemplateID names one of the closed set of template pairs. Each ID maps to
// a screen layout and a print layout rendered from the same projection.
type TemplateID string

// The available templates.
const (
	TemplateModern       TemplateID = "modern"
	TemplateClassic      TemplateID = "classic"
	TemplateProfessional TemplateID = "professional"
)

// TemplateIDs returns the selectable template identifiers in display order.
func TemplateIDs() []TemplateID {
	return []TemplateID{TemplateClassic, TemplateModern, TemplateProfessional}
}

// ParseTemplateID validates a template identifier from the outside world.
func ParseTemplateID(s string) (TemplateID, error) {
	switch TemplateID(s) {
	case TemplateModern, TemplateClassic, TemplateProfessional:
		return TemplateID(s), nil
	default:
		return "", fmt.Errorf("unknown template %q", s)
	}
}

// pair holds the two parsed surfaces of one template.
type pair struct {
	screen *template.Template
	print  *template.Template
}

// Registry maps every TemplateID to its screen/print template pair. All
// templates are parsed once at construction; rendering is a pure function of
// the document afterwards.
type Registry struct {
	pairs map[TemplateID]pair
}

// NewRegistry parses the embedded templates and builds the registry.
func NewRegistry() (*Registry, error) {
	r := &Registry{pairs: make(map[TemplateID]pair)}
	for _, id := range TemplateIDs() {
		screen, err := parseTemplate(string(id) + "_screen.gohtml")
		if err != nil {
			return nil, err
		}
		print, err := parseTemplate(string(id) + "_print.gohtml")
		if err != nil {
			return nil, err
		}
		r.pairs[id] = pair{screen: screen, print: print}
	}
	return r, nil
}

func parseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.New(name).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse " + name, Cause: err}
	}
	return tmpl, nil
}

// Screen renders the on-screen preview of the document for the given
// template. The document is cloned before projection so rendering can never
// mutate the caller's state.
func (r *Registry) Screen(id TemplateID, doc *cv.Document) (string, error) {
	p, ok := r.pairs[id]
	if !ok {
		return "", fmt.Errorf("unknown template %q", id)
	}
	return execute(p.screen, doc)
}

// Print renders the paginated, print-oriented counterpart used for export.
// It carries the same information set as Screen for the same ID.
func (r *Registry) Print(id TemplateID, doc *cv.Document) (string, error) {
	p, ok := r.pairs[id]
	if !ok {
		return "", fmt.Errorf("unknown template %q", id)
	}
	return execute(p.print, doc)
}

func execute(tmpl *template.Template, doc *cv.Document) (string, error) {
	view := BuildView(doc.Clone())
	var out strings.Builder
	if err := tmpl.Execute(&out, view); err != nil {
		return "", &TemplateError{Message: "failed to execute " + tmpl.Name(), Cause: err}
	}
	return out.String(), nil
}

package c2cgpx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Transformer converts camptocamp markup into HTML.
// Implementations never fail: malformed markup is rendered literally.
type Transformer interface {
	Transform(text string) string
}

// DocumentFormatter renders the title and HTML description of a document.
type DocumentFormatter interface {
	// Format returns the title and body of doc.
	// Returns ENOLOCALE if doc has no block in a preferred language.
	Format(doc *Document) (title, body string, err error)
}

// Ensure Formatter implements DocumentFormatter at compile time.
var _ DocumentFormatter = (*Formatter)(nil)

// lineBreak separates the lines of a description.
const lineBreak = "<br/>"

// routeSections are the long text fields rendered below a route summary.
var routeSections = []struct {
	field string
	label string
}{
	{"route_history", "Historique"},
	{"description", "Description"},
	{"remarks", "Remarques"},
	{"gear", "Équipement"},
}

// genericExcluded are the locale fields left out of generic descriptions.
var genericExcluded = map[string]bool{
	"title":    true,
	"lang":     true,
	"version":  true,
	"topic_id": true,
}

// Formatter renders documents using a markup Transformer.
type Formatter struct {
	Markup Transformer

	// Languages is the locale preference. Defaults to DefaultLanguages.
	Languages []string
}

// NewFormatter returns a Formatter using markup and the given language
// preference. An empty langs means DefaultLanguages.
func NewFormatter(markup Transformer, langs []string) *Formatter {
	return &Formatter{Markup: markup, Languages: langs}
}

// Format returns the locale title verbatim and a type-specific HTML body.
func (f *Formatter) Format(doc *Document) (string, string, error) {
	if doc.Type == "" {
		return "", "", Errorf(EINVALID, "document %d: type required", doc.ID)
	}

	langs := f.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	loc, err := ResolveLocale(doc, langs)
	if err != nil {
		return "", "", err
	}

	if doc.Type != TypeRoute {
		return loc.Title(), f.formatGeneric(doc, loc), nil
	}

	route, err := DecodeRoute(doc)
	if err != nil {
		return "", "", err
	}
	return loc.Title(), f.formatRoute(doc, loc, route), nil
}

func (f *Formatter) formatRoute(doc *Document, loc *Locale, route *Route) string {
	lines := []string{
		fmt.Sprintf(`<p> <a href="%s">%d</a>`, doc.Type.Permalink(doc.ID), doc.ID),
	}

	for _, l := range []struct{ label, value string }{
		{"Secteur", loc.String("title_prefix")},
		{"Cotations", route.Grading()},
		{"Altitude", route.Altitude()},
		{"Orientation", route.Orientation()},
		{"Dénivelé", route.HeightDiff()},
	} {
		if l.value != "" {
			lines = append(lines, fmt.Sprintf("<b>%s</b> : %s", l.label, l.value))
		}
	}

	if summary := loc.String("summary"); strings.TrimSpace(summary) != "" {
		lines = append(lines, f.Markup.Transform(summary))
	}
	lines = append(lines, "</p>", "<hr>")

	for _, s := range routeSections {
		text := loc.String(s.field)
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("<h1>%s</h1> %s", s.label, f.Markup.Transform(text)))
	}

	return strings.Join(lines, lineBreak)
}

func (f *Formatter) formatGeneric(doc *Document, loc *Locale) string {
	lines := []string{
		fmt.Sprintf(`<p> <a href="%s">%s %d</a></p>`, doc.Type.Permalink(doc.ID), doc.Type, doc.ID),
	}

	names := make([]string, 0, len(loc.Fields))
	for name := range loc.Fields {
		if !genericExcluded[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var rendered string
		switch v := loc.Fields[name].(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			rendered = f.Markup.Transform(v)
		default:
			rendered = literal(v)
			if rendered == "" {
				continue
			}
		}
		lines = append(lines, fmt.Sprintf("<b>%s</b> : %s", name, rendered))
	}

	return strings.Join(lines, lineBreak)
}

// literal renders a non-string field value as its JSON text.
// Empty lists and objects render as "".
func literal(v any) string {
	switch v := v.(type) {
	case json.Number:
		return v.String()
	case []any:
		if len(v) == 0 {
			return ""
		}
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

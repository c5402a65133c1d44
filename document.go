package c2cgpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SiteURL is the public camptocamp site that permalinks point to.
const SiteURL = "https://www.camptocamp.org"

// DocumentType names a camptocamp document collection.
// Values double as the API and site path segment.
type DocumentType string

// DocumentType constants.
const (
	TypeRoute    DocumentType = "routes"
	TypeOuting   DocumentType = "outings"
	TypeWaypoint DocumentType = "waypoints"
	TypeReport   DocumentType = "xreports"
)

// ParseDocumentType returns the DocumentType for a path segment.
// Singular forms are accepted.
func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToLower(strings.Trim(s, "/")) {
	case "routes", "route":
		return TypeRoute, nil
	case "outings", "outing":
		return TypeOuting, nil
	case "waypoints", "waypoint":
		return TypeWaypoint, nil
	case "xreports", "xreport", "reports", "report":
		return TypeReport, nil
	}
	return "", Errorf(EINVALID, "unsupported document type %q", s)
}

// Permalink returns the public URL of the document with the given id.
func (t DocumentType) Permalink(id int64) string {
	return fmt.Sprintf("%s/%s/%d", SiteURL, t, id)
}

// Document is a camptocamp record as returned by the document endpoint.
// Only the fields every document type shares are decoded; the full record
// is kept in Raw for type-specific decoding at the formatting boundary.
type Document struct {
	ID       int64        `json:"document_id"`
	Type     DocumentType `json:"-"`
	Locales  []*Locale    `json:"locales"`
	Geometry *Geometry    `json:"geometry"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the shared fields and retains the raw record.
func (d *Document) UnmarshalJSON(data []byte) error {
	type document Document
	var v document
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Document(v)
	d.Locales = slices.DeleteFunc(d.Locales, func(l *Locale) bool { return l == nil })
	d.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Validate returns an error if the document contains invalid fields.
// Locale blocks are not checked: repeated languages resolve to the first
// block and blocks without a language never match a preference.
func (d *Document) Validate() error {
	if d.ID <= 0 {
		return Errorf(EINVALID, "document id required")
	}
	return nil
}

// Locale returns the block for lang, or nil if the document has none.
// When the record carries the same language twice, the first block wins.
func (d *Document) Locale(lang string) *Locale {
	for _, l := range d.Locales {
		if l != nil && l.Lang == lang {
			return l
		}
	}
	return nil
}

// Locale is a language-specific block of text fields attached to a Document.
type Locale struct {
	Lang   string
	Fields map[string]any
}

// UnmarshalJSON decodes every locale field, keeping numbers as json.Number.
func (l *Locale) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	fields := make(map[string]any)
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	lang, _ := fields["lang"].(string)
	*l = Locale{Lang: lang, Fields: fields}
	return nil
}

// String returns the named field if it holds a string, or "".
func (l *Locale) String(name string) string {
	s, _ := l.Fields[name].(string)
	return s
}

// Title returns the locale title.
func (l *Locale) Title() string {
	return l.String("title")
}

// Geometry holds the document location as stored by the API.
type Geometry struct {
	// Geom is a GeoJSON Point encoded as a string, in EPSG:3857.
	Geom string `json:"geom"`
}

// Point decodes Geom into a projected coordinate pair.
func (g *Geometry) Point() (x, y float64, err error) {
	if g == nil || g.Geom == "" {
		return 0, 0, fmt.Errorf("geom missing")
	}
	geom, err := geojson.UnmarshalGeometry([]byte(g.Geom))
	if err != nil {
		return 0, 0, fmt.Errorf("decoding geom: %w", err)
	}
	p, ok := geom.Coordinates.(orb.Point)
	if !ok {
		return 0, 0, fmt.Errorf("geom type %q is not a Point", geom.Type)
	}
	return p.X(), p.Y(), nil
}

// DocumentService retrieves documents from the camptocamp API.
type DocumentService interface {
	// FindDocumentIDs enumerates the ids of all documents of typ matching filter.
	// Returns EREQUEST if the search endpoint answers with a non-2xx status.
	FindDocumentIDs(ctx context.Context, typ DocumentType, filter Filter) ([]int64, error)

	// FetchDocument retrieves the full record of a document.
	// Returns EREQUEST if the document endpoint answers with a non-2xx status.
	FetchDocument(ctx context.Context, typ DocumentType, id int64) (*Document, error)
}

// ResponseCache stores response bodies keyed by request.
type ResponseCache interface {
	// Get returns the cached body for key.
	// Returns ENOTFOUND if there is no live entry.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores body under key.
	Set(ctx context.Context, key string, body []byte) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

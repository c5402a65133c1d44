package c2cgpx

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxPageSize is the largest page the search endpoint serves.
const MaxPageSize = 100

// Param is a single search query parameter.
type Param struct {
	Name   string
	Values []string
}

// Filter selects the documents to enumerate.
// Params keep the order they were given in.
type Filter struct {
	Params []Param

	// Limit is the page size. Zero means MaxPageSize.
	Limit int
}

// Validate returns an error if the filter contains invalid fields.
func (f Filter) Validate() error {
	if f.Limit < 0 {
		return Errorf(EINVALID, "filter limit must not be negative")
	}
	for _, p := range f.Params {
		switch p.Name {
		case "":
			return Errorf(EINVALID, "filter parameter name required")
		case "offset", "limit":
			return Errorf(EINVALID, "filter parameter %q is reserved", p.Name)
		}
	}
	return nil
}

// PageSize returns the effective page size, capped at MaxPageSize.
func (f Filter) PageSize() int {
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		return MaxPageSize
	}
	return f.Limit
}

// Encode returns the query string for the page starting at offset.
// Params are emitted in order, followed by offset and limit.
func (f Filter) Encode(offset int) string {
	var b strings.Builder
	for _, p := range f.Params {
		for _, v := range p.Values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(p.Name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString("offset=")
	b.WriteString(strconv.Itoa(offset))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(f.PageSize()))
	return b.String()
}

// ParseFilter builds a Filter from a raw query string, preserving parameter
// order. Repeated names are merged into one Param. A limit parameter sets
// the page size; offset is ignored.
func ParseFilter(rawQuery string) (Filter, error) {
	var f Filter
	index := make(map[string]int)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(name)
		if err != nil {
			return Filter{}, Errorf(EINVALID, "invalid query parameter %q", pair)
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return Filter{}, Errorf(EINVALID, "invalid query parameter %q", pair)
		}

		switch name {
		case "":
			continue
		case "offset":
			continue
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return Filter{}, Errorf(EINVALID, "invalid limit %q", value)
			}
			f.Limit = n
			continue
		}

		if i, ok := index[name]; ok {
			f.Params[i].Values = append(f.Params[i].Values, value)
			continue
		}
		index[name] = len(f.Params)
		f.Params = append(f.Params, Param{Name: name, Values: []string{value}})
	}
	return f, nil
}

// ParseSearchURL splits a camptocamp search URL, from the site or the API,
// into the document type named by its path and the filter in its query.
// Site URLs that carry the query in the fragment are accepted too.
func ParseSearchURL(rawURL string) (DocumentType, Filter, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Filter{}, Errorf(EINVALID, "invalid search URL %q", rawURL)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	typ, err := ParseDocumentType(segments[len(segments)-1])
	if err != nil {
		return "", Filter{}, err
	}

	query := u.RawQuery
	if query == "" {
		query = u.EscapedFragment()
	}
	filter, err := ParseFilter(query)
	if err != nil {
		return "", Filter{}, err
	}
	return typ, filter, nil
}

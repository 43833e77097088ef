package fashion

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Document is a parsed catalog page.
type Document interface {
	// Select returns every element matching selector.
	Select(selector string) ([]Element, error)
	// Resolve turns a (possibly relative) reference into an absolute URL
	// using the document's own address.
	Resolve(ref string) (string, error)
}

// Element is one node inside a Document.
type Element interface {
	Select(selector string) ([]Element, error)
	Text() string
	Attr(name string) (string, bool)
}

type htmlDocument struct {
	doc  *goquery.Document
	base *url.URL
}

// ParseDocument parses HTML read from r. base is the address the page was
// served from and is used to resolve relative links.
func ParseDocument(r io.Reader, base *url.URL) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Url = base
	return &htmlDocument{doc: doc, base: base}, nil
}

func (d *htmlDocument) Select(selector string) ([]Element, error) {
	return find(d.doc.Selection, selector)
}

func (d *htmlDocument) Resolve(ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	if d.base == nil {
		if !u.IsAbs() {
			return "", fmt.Errorf("resolve %q: document has no base URL", ref)
		}
		return u.String(), nil
	}
	return d.base.ResolveReference(u).String(), nil
}

type htmlElement struct {
	sel *goquery.Selection
}

func (e htmlElement) Select(selector string) ([]Element, error) {
	return find(e.sel, selector)
}

func (e htmlElement) Text() string {
	return e.sel.Text()
}

func (e htmlElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// find compiles selector up front; goquery silently matches nothing on a bad
// selector and we want that surfaced.
func find(sel *goquery.Selection, selector string) ([]Element, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	found := sel.FindMatcher(m)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, htmlElement{sel: s})
	})
	return out, nil
}

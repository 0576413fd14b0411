// Package imgsource normalizes caller-supplied image references.
//
// A viewer can be opened with either a plain URL string or a handle to an
// image element the host has already materialized. Source is the tagged
// variant over the two cases: the discriminants are explicit at
// construction, and URL derivation is pure data inspection with no loading
// side effects.
package imgsource

// Element is an already-materialized image handle owned by the host.
// The core never loads or renders through it; it only reads the current
// source URL. Handles that also implement geometry.Surface can double as
// the animation target when no explicit target is given.
type Element interface {
	// SourceURL returns the element's current source URL.
	SourceURL() string
}

type kind int

const (
	kindString kind = iota + 1
	kindElement
)

// Source wraps either a URL string or an image element handle. It is
// immutable; each open replaces the previous Source rather than mutating
// it.
type Source struct {
	kind kind
	url  string
	el   Element
}

// FromURL creates a string-variant source.
func FromURL(url string) *Source {
	return &Source{kind: kindString, url: url}
}

// FromElement creates an element-variant source.
func FromElement(el Element) *Source {
	return &Source{kind: kindElement, el: el}
}

// IsString reports whether the source wraps a URL string.
func (s *Source) IsString() bool { return s != nil && s.kind == kindString }

// IsElement reports whether the source wraps an element handle.
func (s *Source) IsElement() bool { return s != nil && s.kind == kindElement }

// URL returns the string directly, or the element's current source URL.
func (s *Source) URL() string {
	switch {
	case s == nil:
		return ""
	case s.kind == kindString:
		return s.url
	case s.el != nil:
		return s.el.SourceURL()
	}
	return ""
}

// Element returns the wrapped handle, or nil for the string variant.
func (s *Source) Element() Element {
	if s == nil || s.kind != kindElement {
		return nil
	}
	return s.el
}

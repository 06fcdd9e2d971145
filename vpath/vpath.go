// Package vpath models virtual filesystem paths on top of a flat object key space.
//
// A Key addresses a single object. A Prefix addresses a virtual directory and is either
// empty (the bucket root) or ends with a slash. A Key that ends with a slash is a folder
// marker: a zero-byte object whose only purpose is to make an otherwise empty directory
// visible in delimiter listings.
package vpath

import (
	"strings"
)

// Separator delimits virtual directory levels inside keys.
const Separator = "/"

// Root is the prefix of the bucket root.
const Root Prefix = ""

// Key identifies one object in the store.
type Key string

// Prefix identifies a virtual directory. It is empty or ends with Separator.
type Prefix string

// NewPrefix normalizes raw into a Prefix.
// Leading separators are dropped and a trailing separator is appended when missing.
func NewPrefix(raw string) Prefix {
	raw = strings.TrimLeft(raw, Separator)
	if raw == "" {
		return Root
	}
	if !strings.HasSuffix(raw, Separator) {
		raw += Separator
	}
	return Prefix(raw)
}

// NewKey drops leading separators from raw.
func NewKey(raw string) Key {
	return Key(strings.TrimLeft(raw, Separator))
}

// String implements fmt.Stringer.
func (k Key) String() string { return string(k) }

// IsFolderMarker reports whether k is a folder marker.
func (k Key) IsFolderMarker() bool {
	return strings.HasSuffix(string(k), Separator)
}

// AsPrefix interprets k as a directory.
func (k Key) AsPrefix() Prefix {
	return NewPrefix(string(k))
}

// RelativeTo returns k with p stripped. The result is k unchanged when p does not contain it.
func (k Key) RelativeTo(p Prefix) string {
	return strings.TrimPrefix(string(k), string(p))
}

// Rebase moves k from one directory to another, keeping its path relative to from.
func (k Key) Rebase(from, to Prefix) Key {
	return Key(string(to) + k.RelativeTo(from))
}

// String implements fmt.Stringer.
func (p Prefix) String() string { return string(p) }

// IsRoot reports whether p is the bucket root.
func (p Prefix) IsRoot() bool { return p == Root }

// Marker returns the folder marker key of p. The root has no marker.
func (p Prefix) Marker() Key { return Key(p) }

// Contains reports whether k lives under p at any depth, p's own marker included.
func (p Prefix) Contains(k Key) bool {
	return strings.HasPrefix(string(k), string(p))
}

// Within reports whether p equals other or is nested below it.
func (p Prefix) Within(other Prefix) bool {
	return strings.HasPrefix(string(p), string(other))
}

// File returns the key of the file called name directly under p.
func (p Prefix) File(name string) Key {
	return Key(string(p) + name)
}

// Folder returns the prefix of the folder called name directly under p.
func (p Prefix) Folder(name string) Prefix {
	return Prefix(string(p) + name + Separator)
}

// ChildName returns the display name of an immediate sub-prefix of p,
// without the parent part and without the trailing separator.
func (p Prefix) ChildName(sub Prefix) string {
	return strings.TrimSuffix(strings.TrimPrefix(string(sub), string(p)), Separator)
}

// Parent returns the directory that contains path, or Root for top level entries.
func Parent(path string) Prefix {
	trimmed := strings.TrimSuffix(path, Separator)
	idx := strings.LastIndex(trimmed, Separator)
	if idx < 0 {
		return Root
	}
	return Prefix(trimmed[:idx+1])
}

// BaseName returns the last non-empty segment of path.
func BaseName(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// Segments splits path on Separator and drops empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, Separator)
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsValid reports whether path is usable as a key or prefix:
// no leading separator, no empty inner segment and no "." or ".." segment.
// The empty path is valid and means the root.
func IsValid(path string) bool {
	if path == "" {
		return true
	}
	if strings.HasPrefix(path, Separator) || strings.Contains(path, Separator+Separator) {
		return false
	}
	for _, segment := range Segments(path) {
		if segment == "." || segment == ".." {
			return false
		}
	}
	return true
}

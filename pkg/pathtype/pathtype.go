// Package pathtype classifies location strings by syntax and provides the
// separator- and case-insensitive path helpers the comparator and resolver share.
package pathtype

import (
	"strings"

	"github.com/mattsolo1/grove-shellnav/pkg/names"
)

// Type is the syntactic kind of a location string.
type Type int

const (
	Unknown Type = iota
	FileSystemPath
	SpecialFolder
	WinShellPath
)

func (t Type) String() string {
	switch t {
	case FileSystemPath:
		return "FileSystemPath"
	case SpecialFolder:
		return "SpecialFolder"
	case WinShellPath:
		return "WinShellPath"
	default:
		return "Unknown"
	}
}

// Separator is the canonical path separator.
const Separator = '\\'

// Classify inspects the first two characters of s. It never touches storage.
func Classify(s string) Type {
	if len(s) < 2 {
		return Unknown
	}
	switch {
	case isASCIILetter(s[0]) && s[1] == ':':
		return FileSystemPath
	case s[0] == '\\' && s[1] == '\\':
		return FileSystemPath
	case s[0] == ':' && s[1] == ':':
		return SpecialFolder
	default:
		return WinShellPath
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSeparator(r rune) bool {
	return r == '\\' || r == '/'
}

// Split breaks p into its non-empty segments. Both '\' and '/' separate.
func Split(p string) []string {
	return strings.FieldsFunc(p, isSeparator)
}

// Join joins segments with the canonical separator.
func Join(segs []string) string {
	return strings.Join(segs, string(Separator))
}

// Normalize returns the comparison form of p: folded case, canonical
// separators, no trailing separator. A UNC prefix is kept.
func Normalize(p string) string {
	n := Join(Split(names.Fold(p)))
	if isUNC(p) {
		return `\\` + n
	}
	return n
}

func isUNC(p string) bool {
	return len(p) >= 2 && isSeparator(rune(p[0])) && isSeparator(rune(p[1]))
}

// Equal reports whether a and b name the same path ignoring case and separators.
func Equal(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return Normalize(a) == Normalize(b)
}

// HasPrefix reports whether prefix names p or an ancestor of p, comparing
// whole segments. rest holds the segments of p below prefix, in their original case.
func HasPrefix(prefix, p string) (rest []string, ok bool) {
	if prefix == "" || p == "" || isUNC(prefix) != isUNC(p) {
		return nil, false
	}
	ps := Split(prefix)
	s := Split(p)
	if len(ps) > len(s) {
		return nil, false
	}
	for i := range ps {
		if !names.Equal(ps[i], s[i]) {
			return nil, false
		}
	}
	return s[len(ps):], true
}

// TrimSeparators removes leading and trailing separators.
func TrimSeparators(p string) string {
	return strings.TrimFunc(p, isSeparator)
}

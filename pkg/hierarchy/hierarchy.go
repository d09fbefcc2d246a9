// Package hierarchy compares two locations and reports how they relate in the
// namespace tree.
package hierarchy

import (
	"strings"

	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
)

// Relation describes where the second location sits relative to the first.
type Relation uint8

const (
	Unrelated Relation = 1 << iota
	Parent
	Current
	Child

	Related = Parent | Current | Child
	All     = Related | Unrelated
)

// Has reports whether r is one of the relations in mask.
func (r Relation) Has(mask Relation) bool {
	return r&mask != 0
}

func (r Relation) String() string {
	var parts []string
	for _, v := range []struct {
		rel  Relation
		name string
	}{
		{Unrelated, "unrelated"},
		{Parent, "parent"},
		{Current, "current"},
		{Child, "child"},
	} {
		if r&v.rel != 0 {
			parts = append(parts, v.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Compare reports how b relates to a: Child when b lies below a, Parent when b
// lies above a, Current when both are the same item.
//
// File-system paths are compared when both sides have one. Otherwise identity
// and then identifier containment decide.
func Compare(a, b *location.Location) Relation {
	if a == nil || b == nil {
		return Unrelated
	}
	if a.HasPath() && b.HasPath() {
		return ComparePaths(a.FileSystemPath, b.FileSystemPath)
	}
	if location.SameItem(a, b) {
		return Current
	}

	aid, aok := a.FullID()
	bid, bok := b.FullID()
	if !aok || !bok {
		return Unrelated
	}
	switch {
	case aid.IsParentOf(bid):
		return Child
	case bid.IsParentOf(aid):
		return Parent
	default:
		return Unrelated
	}
}

// ComparePaths reports how path b relates to path a, comparing whole segments
// without regard to case.
func ComparePaths(a, b string) Relation {
	if pathtype.Equal(a, b) {
		return Current
	}
	if _, ok := pathtype.HasPrefix(a, b); ok {
		return Child
	}
	if _, ok := pathtype.HasPrefix(b, a); ok {
		return Parent
	}
	return Unrelated
}

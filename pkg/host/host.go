// Package host defines the platform-namespace contract the engine is built on.
// A real OS shell, a virtual file system, or a test double can sit behind it.
package host

import (
	"iter"

	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
)

// Child describes one enumerated item. ID is relative to the enumerated parent.
type Child struct {
	ID        idlist.IDList
	Name      string
	ParseName string
	Label     string
	Flags     location.ItemFlags
}

// SpecialLocation pairs a registered special-location reference with its full identifier.
type SpecialLocation struct {
	Ref string
	ID  idlist.IDList
}

// Host is the minimal namespace a host must expose. Lookups that have no
// answer return an error wrapping shellerr.ErrNotFound.
type Host interface {
	ResolveIdentifierForPath(path string) (idlist.IDList, error)
	ResolvePathForIdentifier(id idlist.IDList) (string, error)
	ResolveSpecialLocation(ref string) (idlist.IDList, error)
	EnumerateChildren(id idlist.IDList) iter.Seq2[Child, error]
	ListAllSpecialLocations() ([]SpecialLocation, error)
}

// Describer is implemented by hosts that can describe an item directly.
// Without it the factory enumerates the item's parent. Describing the empty
// list describes Desktop; the returned ID is then empty.
type Describer interface {
	Describe(id idlist.IDList) (Child, error)
}

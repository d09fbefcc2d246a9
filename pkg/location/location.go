// Package location defines the canonical in-memory form of one namespace item.
package location

import (
	"strings"

	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/names"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
)

// ItemFlags classifies a namespace item.
type ItemFlags uint32

const (
	FlagFolder ItemFlags = 1 << iota
	FlagFileSystem
	FlagFileSystemDirectory
	FlagDataFileContainer // an archive or similar file browsed as a folder
	FlagSpecial
	FlagDesktop
	FlagDrive
	FlagNetwork
)

var flagNames = []struct {
	flag ItemFlags
	name string
}{
	{FlagFolder, "folder"},
	{FlagFileSystem, "filesystem"},
	{FlagFileSystemDirectory, "directory"},
	{FlagDataFileContainer, "container"},
	{FlagSpecial, "special"},
	{FlagDesktop, "desktop"},
	{FlagDrive, "drive"},
	{FlagNetwork, "network"},
}

// Has reports whether every bit of mask is set.
func (f ItemFlags) Has(mask ItemFlags) bool {
	return f&mask == mask
}

// Names lists the set flags by name.
func (f ItemFlags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (f ItemFlags) String() string {
	return strings.Join(f.Names(), "|")
}

// ParseFlag maps a flag name as printed by Names back to its bit.
func ParseFlag(name string) (ItemFlags, bool) {
	for _, fn := range flagNames {
		if names.Equal(fn.name, name) {
			return fn.flag, true
		}
	}
	return 0, false
}

// Location represents one namespace item. Locations built by the factory are
// treated as immutable; use Clone before changing one.
type Location struct {
	// Identity split. Both nil for the Desktop root and for path-only locations.
	ParentID idlist.IDList
	ChildID  idlist.IDList

	Name      string // programmatic name, locale independent where possible
	ParseName string // full parse name as reported by the host
	Label     string // localized display name

	FileSystemPath string // empty when the item has no file-system projection
	SpecialPathID  string // special-location reference such as "::{GUID}"

	Flags ItemFlags
}

// FromPath builds a path-only location, as consumers do for items they only
// know by their file-system path.
func FromPath(path string) *Location {
	segs := pathtype.Split(path)
	name := path
	if len(segs) > 0 {
		name = segs[len(segs)-1]
	}
	return &Location{
		Name:           name,
		ParseName:      path,
		Label:          name,
		FileSystemPath: path,
		Flags:          FlagFileSystem | FlagFolder,
	}
}

// IsDesktop reports whether l is the Desktop root.
func (l *Location) IsDesktop() bool {
	return l != nil && l.Flags.Has(FlagDesktop) && l.ChildID == nil
}

// HasID reports whether l carries a usable identifier.
func (l *Location) HasID() bool {
	return l != nil && (l.ChildID != nil || l.IsDesktop())
}

// FullID returns the combined identifier, or false when l has none.
func (l *Location) FullID() (idlist.IDList, bool) {
	if !l.HasID() {
		return nil, false
	}
	if l.ChildID == nil {
		return idlist.Desktop(), true
	}
	full, err := idlist.Combine(l.ParentID, l.ChildID)
	if err != nil {
		return nil, false
	}
	return full, true
}

// HasPath reports whether l has a file-system projection.
func (l *Location) HasPath() bool {
	return l != nil && l.FileSystemPath != ""
}

// DisplayName returns the label, falling back to the name.
func (l *Location) DisplayName() string {
	if l.Label != "" {
		return l.Label
	}
	return l.Name
}

// MatchesName reports whether name equals the item's name or label ignoring case.
func (l *Location) MatchesName(name string) bool {
	return names.EqualAny(name, l.Name, l.Label)
}

// Clone deep-copies l, identifier segments included.
func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	c := *l
	if l.ParentID != nil {
		c.ParentID = l.ParentID.Clone()
	}
	if l.ChildID != nil {
		c.ChildID = l.ChildID.Clone()
	}
	return &c
}

func (l *Location) String() string {
	if l == nil {
		return "<nil>"
	}
	if l.FileSystemPath != "" {
		return l.FileSystemPath
	}
	if l.SpecialPathID != "" {
		return l.DisplayName() + " (" + l.SpecialPathID + ")"
	}
	return l.DisplayName()
}

// SameItem reports whether a and b denote the same namespace item: equal full
// identifiers, or, when either lacks one, equal file-system paths, or failing
// that equal special references.
func SameItem(a, b *Location) bool {
	if a == nil || b == nil {
		return false
	}
	aid, aok := a.FullID()
	bid, bok := b.FullID()
	if aok && bok {
		return idlist.Equal(aid, bid)
	}
	if a.HasPath() || b.HasPath() {
		return pathtype.Equal(a.FileSystemPath, b.FileSystemPath)
	}
	return a.SpecialPathID != "" && names.Equal(a.SpecialPathID, b.SpecialPathID)
}

package factory

import (
	"errors"
	"fmt"
	"iter"

	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/names"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

// FilterMode selects which names a search mask is matched against.
type FilterMode int

const (
	// NameOnly matches the mask against the display name and the name.
	NameOnly FilterMode = iota
	// NameOrParseName also tries the parse name when the names did not match.
	NameOrParseName
)

func (m FilterMode) matches(mask string, c host.Child) bool {
	if mask == "" {
		return true
	}
	if names.Match(mask, c.Label) || names.Match(mask, c.Name) {
		return true
	}
	return m == NameOrParseName && names.Match(mask, c.ParseName)
}

// GetChildItems lists the direct children of loc, optionally filtered by a
// case-insensitive wildcard mask. The sequence is lazy and can be ranged over
// again; it ends quietly when the host has nothing (more) to give.
func (f *Factory) GetChildItems(loc *location.Location, mask string, mode FilterMode) iter.Seq[*location.Location] {
	return func(yield func(*location.Location) bool) {
		parent, err := f.idFor(loc)
		if err != nil {
			f.log.WithError(err).WithField("location", loc.String()).Debug("no identifier to enumerate")
			return
		}
		for c, err := range f.host.EnumerateChildren(parent) {
			if err != nil {
				f.log.WithError(err).WithField("location", loc.String()).Debug("enumeration ended")
				return
			}
			if !mode.matches(mask, c) {
				continue
			}
			child, err := f.fromChild(parent, c)
			if err != nil {
				f.log.WithError(err).WithField("child", c.Name).Debug("skipping child")
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// FindChild returns the child of loc called name. Names and labels are tried
// first; a parse-name match is used only when no name matches.
func (f *Factory) FindChild(loc *location.Location, name string) (*location.Location, error) {
	parent, err := f.idFor(loc)
	if err != nil {
		return nil, fmt.Errorf("find %q under %s: %w", name, loc, err)
	}

	var (
		fallback host.Child
		found    bool
	)
	for c, err := range f.host.EnumerateChildren(parent) {
		if err != nil {
			return nil, fmt.Errorf("find %q under %s: %w", name, loc, err)
		}
		if names.EqualAny(name, c.Name, c.Label) {
			return f.fromChild(parent, c)
		}
		if !found && names.EqualAny(name, c.ParseName) {
			fallback, found = c, true
		}
	}
	if found {
		return f.fromChild(parent, fallback)
	}
	return nil, fmt.Errorf("find %q under %s: %w", name, loc, shellerr.ErrNotFound)
}

// idFor returns the identifier to enumerate loc by, resolving it through the
// host when loc only carries a path or a special reference.
func (f *Factory) idFor(loc *location.Location) (idlist.IDList, error) {
	if loc == nil {
		return nil, fmt.Errorf("nil location: %w", shellerr.ErrInvalidArgument)
	}
	if id, ok := loc.FullID(); ok {
		return id, nil
	}
	if loc.HasPath() {
		return f.host.ResolveIdentifierForPath(loc.FileSystemPath)
	}
	if loc.SpecialPathID != "" {
		return f.host.ResolveSpecialLocation(loc.SpecialPathID)
	}
	return nil, fmt.Errorf("location %s has no identity: %w", loc, shellerr.ErrNotFound)
}

// fromChild builds the Location of an enumerated child of parent.
func (f *Factory) fromChild(parent idlist.IDList, c host.Child) (*location.Location, error) {
	full, err := idlist.Combine(parent, c.ID)
	if err != nil {
		return nil, err
	}
	loc := &location.Location{
		Name:      c.Name,
		ParseName: c.ParseName,
		Label:     c.Label,
		Flags:     c.Flags,
	}
	loc.ParentID, loc.ChildID, _ = idlist.SplitLast(full)
	if loc.Label == "" {
		loc.Label = loc.Name
	}

	path, err := f.host.ResolvePathForIdentifier(full)
	switch {
	case err == nil:
		loc.FileSystemPath = path
		loc.Flags |= location.FlagFileSystem
	case !errors.Is(err, shellerr.ErrNotFound):
		return nil, err
	}
	f.attachSpecialRef(loc)
	return loc, nil
}

// Package factory turns file-system paths, special-location references,
// shell display-name paths and raw identifiers into Locations.
package factory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-shellnav/internal/logging"
	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

// Special references of the two canonical roots.
const (
	DesktopRef = "::{00021400-0000-0000-C000-000000000046}"
	ThisPCRef  = "::{20D04FE0-3AEA-1069-A2D8-08002B30309D}"
)

// Factory builds Locations against one host.
type Factory struct {
	host     host.Host
	specials *SpecialCache
	log      *logrus.Entry
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *logrus.Entry) Option {
	return func(f *Factory) {
		f.log = l
	}
}

// WithSpecialCache injects the special-folder cache, e.g. a pre-seeded one in tests.
func WithSpecialCache(c *SpecialCache) Option {
	return func(f *Factory) {
		f.specials = c
	}
}

// New creates a factory over h.
func New(h host.Host, opts ...Option) *Factory {
	f := &Factory{
		host:     h,
		specials: NewSpecialCache(),
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Host returns the namespace the factory resolves against.
func (f *Factory) Host() host.Host {
	return f.host
}

// SpecialCache returns the factory's special-folder cache.
func (f *Factory) SpecialCache() *SpecialCache {
	return f.specials
}

type createOptions struct {
	findSpecial bool
}

// CreateOption tunes a single Create call.
type CreateOption func(*createOptions)

// FindSpecial makes Create look up the special reference of the result even
// when that forces the special-folder cache to be filled.
func FindSpecial() CreateOption {
	return func(o *createOptions) {
		o.findSpecial = true
	}
}

// Create resolves a file-system path, a special reference ("::{GUID}", optionally
// followed by child names) or a shell display-name path ("Libraries\Music").
func (f *Factory) Create(input string, opts ...CreateOption) (*location.Location, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	input = strings.TrimSpace(input)
	kind := pathtype.Classify(input)
	if kind == pathtype.Unknown || malformed(kind, input) {
		return nil, fmt.Errorf("create location from %q: %w", input, shellerr.ErrInvalidArgument)
	}

	if kind != pathtype.SpecialFolder {
		if loc, ok := f.specialByPath(input); ok {
			f.log.WithField("input", input).Debug("special folder cache hit")
			return loc, nil
		}
	}

	var (
		loc *location.Location
		err error
	)
	switch kind {
	case pathtype.FileSystemPath:
		loc, err = f.createFromPath(input)
	case pathtype.SpecialFolder:
		loc, err = f.createFromSpecial(input)
	case pathtype.WinShellPath:
		loc, err = f.createFromShellPath(input)
	}
	if err != nil {
		return nil, err
	}

	if o.findSpecial && loc.SpecialPathID == "" {
		if err := f.specials.ensure(f.discoverSpecials); err != nil {
			f.log.WithError(err).Warn("special folder discovery failed")
		}
		f.attachSpecialRef(loc)
	}
	return loc, nil
}

// CreateNamed resolves parseName and overrides the resulting name and label
// with the supplied ones, for callers that already know how to present the item.
func (f *Factory) CreateNamed(parseName, name, label string) (*location.Location, error) {
	loc, err := f.Create(parseName)
	if err != nil {
		return nil, err
	}
	if name != "" {
		loc.Name = name
	}
	if label != "" {
		loc.Label = label
	}
	return loc, nil
}

// CreateFromID builds the Location for a full identifier.
func (f *Factory) CreateFromID(full idlist.IDList) (*location.Location, error) {
	loc, err := f.build(full)
	if err != nil {
		return nil, err
	}
	f.attachSpecialRef(loc)
	return loc, nil
}

// Desktop returns the Desktop root.
func (f *Factory) Desktop() (*location.Location, error) {
	return f.CreateFromID(idlist.Desktop())
}

// ThisPC returns the This PC root.
func (f *Factory) ThisPC() (*location.Location, error) {
	return f.createFromSpecial(ThisPCRef)
}

// malformed reports input that classifies but names nothing: a special
// reference without a body ("::") or a path without segments (`\\`).
func malformed(kind pathtype.Type, input string) bool {
	switch kind {
	case pathtype.SpecialFolder:
		ref, _ := pathtype.SplitSpecial(input)
		return strings.TrimPrefix(ref, pathtype.SpecialPrefix) == ""
	case pathtype.FileSystemPath:
		return len(pathtype.Split(input)) == 0
	}
	return false
}

func (f *Factory) createFromPath(path string) (*location.Location, error) {
	id, err := f.host.ResolveIdentifierForPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	return f.CreateFromID(id)
}

func (f *Factory) createFromSpecial(input string) (*location.Location, error) {
	ref, rest := pathtype.SplitSpecial(input)
	ref = pathtype.NormalizeSpecialRef(ref)
	id, err := f.host.ResolveSpecialLocation(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve special location %q: %w", ref, err)
	}
	loc, err := f.CreateFromID(id)
	if err != nil {
		return nil, err
	}
	loc.SpecialPathID = ref
	loc.Flags |= location.FlagSpecial
	return f.walk(loc, rest, input)
}

func (f *Factory) createFromShellPath(input string) (*location.Location, error) {
	desktop, err := f.Desktop()
	if err != nil {
		return nil, err
	}
	return f.walk(desktop, pathtype.Split(input), input)
}

// walk resolves each segment as a child of the previous one and stops at the
// first segment that has no match.
func (f *Factory) walk(cur *location.Location, segs []string, input string) (*location.Location, error) {
	for _, seg := range segs {
		next, err := f.FindChild(cur, seg)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", input, err)
		}
		cur = next
	}
	return cur, nil
}

func (f *Factory) specialByPath(input string) (*location.Location, bool) {
	if loc, ok := f.specials.lookupPath(input); ok {
		return loc.Clone(), true
	}
	if err := f.specials.ensure(f.discoverSpecials); err != nil {
		f.log.WithError(err).Warn("special folder discovery failed")
		return nil, false
	}
	if loc, ok := f.specials.lookupPath(input); ok {
		return loc.Clone(), true
	}
	return nil, false
}

// discoverSpecials builds a Location for every registered special location.
// Entries the host cannot describe are skipped.
func (f *Factory) discoverSpecials() ([]*location.Location, error) {
	specials, err := f.host.ListAllSpecialLocations()
	if err != nil {
		return nil, fmt.Errorf("list special locations: %w", err)
	}
	locs := make([]*location.Location, 0, len(specials))
	for _, s := range specials {
		loc, err := f.build(s.ID)
		if err != nil {
			f.log.WithError(err).WithField("ref", s.Ref).Debug("skipping special location")
			continue
		}
		loc.SpecialPathID = pathtype.NormalizeSpecialRef(s.Ref)
		loc.Flags |= location.FlagSpecial
		locs = append(locs, loc)
	}
	f.log.WithField("count", len(locs)).Debug("discovered special locations")
	return locs, nil
}

func (f *Factory) attachSpecialRef(loc *location.Location) {
	if loc.SpecialPathID != "" {
		return
	}
	id, ok := loc.FullID()
	if !ok {
		return
	}
	if ref, ok := f.specials.refFor(id); ok {
		loc.SpecialPathID = ref
		loc.Flags |= location.FlagSpecial
	}
}

// build populates a Location from host metadata without consulting the cache.
func (f *Factory) build(full idlist.IDList) (*location.Location, error) {
	item, err := f.describe(full)
	if err != nil {
		return nil, err
	}
	loc := &location.Location{
		Name:      item.Name,
		ParseName: item.ParseName,
		Label:     item.Label,
		Flags:     item.Flags,
	}
	if parent, child, ok := idlist.SplitLast(full); ok {
		loc.ParentID, loc.ChildID = parent, child
	} else {
		loc.Flags |= location.FlagDesktop | location.FlagFolder
		if loc.Name == "" {
			loc.Name = "Desktop"
		}
	}
	if loc.Label == "" {
		loc.Label = loc.Name
	}

	path, err := f.host.ResolvePathForIdentifier(full)
	switch {
	case err == nil:
		loc.FileSystemPath = path
		loc.Flags |= location.FlagFileSystem
	case errors.Is(err, shellerr.ErrNotFound):
	default:
		return nil, fmt.Errorf("resolve path for %s: %w", full, err)
	}
	return loc, nil
}

// describe fetches metadata for full, enumerating its parent when the host
// cannot describe items directly.
func (f *Factory) describe(full idlist.IDList) (host.Child, error) {
	if d, ok := f.host.(host.Describer); ok {
		item, err := d.Describe(full)
		if err != nil {
			return host.Child{}, fmt.Errorf("describe %s: %w", full, err)
		}
		return item, nil
	}

	parent, child, ok := idlist.SplitLast(full)
	if !ok {
		return host.Child{
			ID:        idlist.Desktop(),
			Name:      "Desktop",
			ParseName: DesktopRef,
			Label:     "Desktop",
			Flags:     location.FlagDesktop | location.FlagFolder | location.FlagSpecial,
		}, nil
	}
	for c, err := range f.host.EnumerateChildren(parent) {
		if err != nil {
			return host.Child{}, fmt.Errorf("describe %s: %w", full, err)
		}
		if idlist.Equal(c.ID, child) {
			return c, nil
		}
	}
	return host.Child{}, fmt.Errorf("describe %s: %w", full, shellerr.ErrNotFound)
}

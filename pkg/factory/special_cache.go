package factory

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
)

// SpecialCache maps the file-system paths of registered special locations to
// their Locations, and identifiers back to special references. It is filled
// once, on the first miss, and only ever grows.
//
// Thread Safety:
//
//	Safe for concurrent use. Reads load an immutable snapshot without locking;
//	concurrent first misses share a single population through singleflight.
type SpecialCache struct {
	flight      singleflight.Group
	index       atomic.Pointer[specialIndex]
	populations atomic.Int64
}

type specialIndex struct {
	populated bool
	byPath    map[string]*location.Location // normalized path -> location
	byID      map[string]string             // id key -> special reference
}

func newSpecialIndex() *specialIndex {
	return &specialIndex{
		byPath: make(map[string]*location.Location),
		byID:   make(map[string]string),
	}
}

// add inserts loc unless its path or identifier is already present.
func (idx *specialIndex) add(loc *location.Location) {
	if loc.HasPath() {
		key := pathtype.Normalize(loc.FileSystemPath)
		if _, ok := idx.byPath[key]; !ok {
			idx.byPath[key] = loc
		}
	}
	if id, ok := loc.FullID(); ok && loc.SpecialPathID != "" {
		key := id.Key()
		if _, ok := idx.byID[key]; !ok {
			idx.byID[key] = loc.SpecialPathID
		}
	}
}

func (idx *specialIndex) clone() *specialIndex {
	out := newSpecialIndex()
	out.populated = idx.populated
	for k, v := range idx.byPath {
		out.byPath[k] = v
	}
	for k, v := range idx.byID {
		out.byID[k] = v
	}
	return out
}

// NewSpecialCache returns an empty cache that populates itself on first miss.
func NewSpecialCache() *SpecialCache {
	c := &SpecialCache{}
	c.index.Store(newSpecialIndex())
	return c
}

// NewSeededSpecialCache returns a cache holding locs. A seeded cache counts as
// populated and never asks the host for special locations.
func NewSeededSpecialCache(locs ...*location.Location) *SpecialCache {
	idx := newSpecialIndex()
	for _, l := range locs {
		idx.add(l.Clone())
	}
	idx.populated = true
	c := &SpecialCache{}
	c.index.Store(idx)
	return c
}

// Populated reports whether the cache has been filled.
func (c *SpecialCache) Populated() bool {
	return c.index.Load().populated
}

// Populations counts how many times the cache was filled from the host.
func (c *SpecialCache) Populations() int64 {
	return c.populations.Load()
}

// Len returns the number of cached path entries.
func (c *SpecialCache) Len() int {
	return len(c.index.Load().byPath)
}

func (c *SpecialCache) lookupPath(path string) (*location.Location, bool) {
	loc, ok := c.index.Load().byPath[pathtype.Normalize(path)]
	return loc, ok
}

func (c *SpecialCache) refFor(id idlist.IDList) (string, bool) {
	ref, ok := c.index.Load().byID[id.Key()]
	return ref, ok
}

// ensure fills the cache with discover's results unless it is already filled.
// A failed discovery leaves the cache unpopulated so the next miss retries.
func (c *SpecialCache) ensure(discover func() ([]*location.Location, error)) error {
	if c.Populated() {
		return nil
	}
	_, err, _ := c.flight.Do("populate", func() (interface{}, error) {
		cur := c.index.Load()
		if cur.populated {
			return nil, nil
		}
		locs, err := discover()
		if err != nil {
			return nil, err
		}
		next := cur.clone()
		for _, l := range locs {
			next.add(l)
		}
		next.populated = true
		c.index.Store(next)
		c.populations.Add(1)
		return nil, nil
	})
	return err
}

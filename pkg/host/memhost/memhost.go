// Package memhost is an in-memory namespace host built from a YAML fixture.
package memhost

import (
	"fmt"
	"iter"

	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/host/fixture"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/names"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

type node struct {
	rec      fixture.Record
	children []*node
}

// Host serves a fixed tree. It is read-only after construction and safe for
// concurrent use.
type Host struct {
	root     *node
	byID     map[string]*node
	byPath   map[string]idlist.IDList
	byRef    map[string]idlist.IDList
	specials []host.SpecialLocation
}

var (
	_ host.Host      = (*Host)(nil)
	_ host.Describer = (*Host)(nil)
)

// New builds a host from f. A path that appears on several items resolves to
// the first of them in pre-order; the Desktop root only claims its own path
// when no other item carries it.
func New(f *fixture.Fixture) (*Host, error) {
	recs, err := f.Records()
	if err != nil {
		return nil, err
	}
	h := &Host{
		byID:   make(map[string]*node, len(recs)),
		byPath: make(map[string]idlist.IDList),
		byRef:  make(map[string]idlist.IDList),
	}
	for _, rec := range recs {
		n := &node{rec: rec}
		h.byID[rec.ID.Key()] = n
		if rec.Parent == nil {
			h.root = n
		} else {
			parent, ok := h.byID[rec.Parent.Key()]
			if !ok {
				return nil, fmt.Errorf("memhost: orphan record %q", rec.Item.Name)
			}
			parent.children = append(parent.children, n)
			if rec.Path != "" {
				key := pathtype.Normalize(rec.Path)
				if _, taken := h.byPath[key]; !taken {
					h.byPath[key] = rec.ID
				}
			}
		}
		if rec.Special != "" {
			h.byRef[names.Fold(rec.Special)] = rec.ID
			h.specials = append(h.specials, host.SpecialLocation{Ref: rec.Special, ID: rec.ID})
		}
	}
	if h.root.rec.Path != "" {
		key := pathtype.Normalize(h.root.rec.Path)
		if _, taken := h.byPath[key]; !taken {
			h.byPath[key] = idlist.Desktop()
		}
	}
	return h, nil
}

// Parse builds a host from YAML.
func Parse(data []byte) (*Host, error) {
	f, err := fixture.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(f)
}

// Load builds a host from a YAML file.
func Load(path string) (*Host, error) {
	f, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}
	return New(f)
}

func (h *Host) lookup(id idlist.IDList) (*node, error) {
	n, ok := h.byID[id.Key()]
	if !ok {
		return nil, fmt.Errorf("no item with id %s: %w", id, shellerr.ErrNotFound)
	}
	return n, nil
}

// ResolveIdentifierForPath implements host.Host.
func (h *Host) ResolveIdentifierForPath(path string) (idlist.IDList, error) {
	id, ok := h.byPath[pathtype.Normalize(path)]
	if !ok {
		return nil, fmt.Errorf("no item at %q: %w", path, shellerr.ErrNotFound)
	}
	return id.Clone(), nil
}

// ResolvePathForIdentifier implements host.Host.
func (h *Host) ResolvePathForIdentifier(id idlist.IDList) (string, error) {
	n, err := h.lookup(id)
	if err != nil {
		return "", err
	}
	if n.rec.Path == "" {
		return "", fmt.Errorf("%q has no file-system path: %w", n.rec.Item.Name, shellerr.ErrNotFound)
	}
	return n.rec.Path, nil
}

// ResolveSpecialLocation implements host.Host.
func (h *Host) ResolveSpecialLocation(ref string) (idlist.IDList, error) {
	id, ok := h.byRef[names.Fold(pathtype.NormalizeSpecialRef(ref))]
	if !ok {
		return nil, fmt.Errorf("no special location %q: %w", ref, shellerr.ErrNotFound)
	}
	return id.Clone(), nil
}

// EnumerateChildren implements host.Host.
func (h *Host) EnumerateChildren(id idlist.IDList) iter.Seq2[host.Child, error] {
	return func(yield func(host.Child, error) bool) {
		n, err := h.lookup(id)
		if err != nil {
			yield(host.Child{}, err)
			return
		}
		for _, c := range n.children {
			if !yield(cloneChild(c.rec.Item), nil) {
				return
			}
		}
	}
}

// ListAllSpecialLocations implements host.Host.
func (h *Host) ListAllSpecialLocations() ([]host.SpecialLocation, error) {
	out := make([]host.SpecialLocation, len(h.specials))
	for i, s := range h.specials {
		out[i] = host.SpecialLocation{Ref: s.Ref, ID: s.ID.Clone()}
	}
	return out, nil
}

// Describe implements host.Describer.
func (h *Host) Describe(id idlist.IDList) (host.Child, error) {
	n, err := h.lookup(id)
	if err != nil {
		return host.Child{}, err
	}
	return cloneChild(n.rec.Item), nil
}

func cloneChild(c host.Child) host.Child {
	c.ID = c.ID.Clone()
	return c
}

// Package fixture describes a namespace tree in YAML. The in-memory and SQLite
// hosts are both built from it, so they answer identically for the same file.
package fixture

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
)

// Segment kind bytes, after the shell's own item-ID conventions.
const (
	kindSpecial byte = 0x1F
	kindDrive   byte = 0x2F
	kindItem    byte = 0x31
)

// Fixture is the YAML document root.
type Fixture struct {
	Desktop Node `yaml:"desktop"`
}

// Node is one namespace item and its children.
type Node struct {
	Name      string   `yaml:"name"`
	ParseName string   `yaml:"parse_name,omitempty"`
	Label     string   `yaml:"label,omitempty"`
	Path      string   `yaml:"path,omitempty"`
	Special   string   `yaml:"special,omitempty"`
	Flags     []string `yaml:"flags,flow,omitempty"`
	ID        string   `yaml:"id,omitempty"` // hex segment, overrides the generated one
	Children  []Node   `yaml:"children,omitempty"`
}

// Record is a flattened node with its identity worked out.
type Record struct {
	ID      idlist.IDList // full identifier
	Parent  idlist.IDList // nil for the root
	Item    host.Child    // ID relative to Parent; empty for the root
	Path    string
	Special string
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if f.Desktop.Name == "" {
		f.Desktop.Name = "Desktop"
	}
	return &f, nil
}

// Load reads and decodes a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Records flattens the tree in depth-first pre-order, root first.
func (f *Fixture) Records() ([]Record, error) {
	root, err := record(nil, f.Desktop)
	if err != nil {
		return nil, err
	}
	root.Item.Flags |= location.FlagDesktop | location.FlagFolder
	out := []Record{root}
	return walk(out, root.ID, f.Desktop.Children)
}

func walk(out []Record, parent idlist.IDList, children []Node) ([]Record, error) {
	seen := make(map[string]string, len(children))
	for _, n := range children {
		rec, err := record(parent, n)
		if err != nil {
			return nil, err
		}
		key := rec.ID.Key()
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("fixture: %q and %q share identifier %s under %s", prev, n.Name, rec.Item.ID, parent)
		}
		seen[key] = n.Name
		out = append(out, rec)
		if out, err = walk(out, rec.ID, n.Children); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func record(parent idlist.IDList, n Node) (Record, error) {
	if n.Name == "" {
		return Record{}, fmt.Errorf("fixture: node without name under %s", parent)
	}
	flags, err := parseFlags(n)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Path:    n.Path,
		Item: host.Child{
			Name:      n.Name,
			ParseName: n.ParseName,
			Label:     n.Label,
			Flags:     flags,
		},
	}
	if n.Special != "" {
		rec.Special = pathtype.NormalizeSpecialRef(n.Special)
	}
	if rec.Item.Label == "" {
		rec.Item.Label = n.Name
	}
	if rec.Item.ParseName == "" {
		switch {
		case n.Path != "":
			rec.Item.ParseName = n.Path
		case rec.Special != "":
			rec.Item.ParseName = rec.Special
		default:
			rec.Item.ParseName = n.Name
		}
	}

	if parent == nil {
		rec.ID = idlist.Desktop()
		rec.Item.ID = idlist.Desktop()
		return rec, nil
	}
	seg, err := segment(n, rec.Special, flags)
	if err != nil {
		return Record{}, err
	}
	rec.Parent = parent.Clone()
	rec.Item.ID = idlist.New(seg)
	rec.ID, err = idlist.Combine(parent, rec.Item.ID)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func parseFlags(n Node) (location.ItemFlags, error) {
	var flags location.ItemFlags
	for _, name := range n.Flags {
		f, ok := location.ParseFlag(name)
		if !ok {
			return 0, fmt.Errorf("fixture: unknown flag %q on %q", name, n.Name)
		}
		flags |= f
	}
	if n.Path != "" {
		flags |= location.FlagFileSystem
	}
	if n.Special != "" {
		flags |= location.FlagSpecial
	}
	if len(n.Children) > 0 {
		flags |= location.FlagFolder
	}
	return flags, nil
}

// segment derives the identifier segment for n: an explicit hex id, a GUID
// segment for special items, a drive segment, or the name for everything else.
func segment(n Node, special string, flags location.ItemFlags) ([]byte, error) {
	if n.ID != "" {
		seg, err := hex.DecodeString(n.ID)
		if err != nil {
			return nil, fmt.Errorf("fixture: bad id on %q: %w", n.Name, err)
		}
		return seg, nil
	}
	if guid, ok := pathtype.SpecialGUID(special); ok {
		return append([]byte{kindSpecial}, guid[:]...), nil
	}
	if flags.Has(location.FlagDrive) {
		return append([]byte{kindDrive}, n.Name...), nil
	}
	return append([]byte{kindItem}, n.Name...), nil
}

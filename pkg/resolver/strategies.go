package resolver

import (
	"slices"

	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
)

// rerootEnv holds the canonical roots and their direct children for one
// Reroot call.
type rerootEnv struct {
	r           *Resolver
	desktop     *location.Location
	desktopKids []*location.Location
	thisPC      *location.Location // nil when the host has no This PC
	thisPCKids  []*location.Location
}

func (r *Resolver) newEnv() (*rerootEnv, error) {
	desktop, err := r.f.Desktop()
	if err != nil {
		return nil, err
	}
	env := &rerootEnv{
		r:           r,
		desktop:     desktop,
		desktopKids: slices.Collect(r.f.GetChildItems(desktop, "", factory.NameOnly)),
	}
	if pc, err := r.f.ThisPC(); err == nil {
		env.thisPC = pc
		env.thisPCKids = slices.Collect(r.f.GetChildItems(pc, "", factory.NameOnly))
	} else {
		r.log.WithError(err).Debug("no This PC root")
	}
	return env, nil
}

type strategy struct {
	name  string
	apply func(env *rerootEnv, chain []*location.Location, target string) ([]*location.Location, bool)
}

var strategies = []strategy{
	{"alreadyRootedAtDesktop", alreadyRootedAtDesktop},
	{"foundUnderDesktop", foundUnderDesktop},
	{"foundUnderDesktopChild", foundUnderDesktopChild},
	{"winShellTarget", winShellTarget},
	{"fileSystemUnderDesktop", fileSystemUnderDesktop},
	{"fileSystemUnderThisPCChild", fileSystemUnderThisPCChild},
	{"fallbackUnderThisPC", fallbackUnderThisPC},
}

// alreadyRootedAtDesktop applies when Desktop itself is in the chain.
func alreadyRootedAtDesktop(env *rerootEnv, chain []*location.Location, _ string) ([]*location.Location, bool) {
	for i, elem := range chain {
		if !env.isDesktop(elem) {
			continue
		}
		if i == len(chain)-1 {
			return env.thisPCDesktopPair()
		}
		return slices.Clone(chain[i+1:]), true
	}
	return nil, false
}

// foundUnderDesktop scans from the end for an element that is also a direct
// child of Desktop.
func foundUnderDesktop(env *rerootEnv, chain []*location.Location, _ string) ([]*location.Location, bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		for _, kid := range env.desktopKids {
			if matches(kid, chain[i]) {
				return slices.Clone(chain[i:]), true
			}
		}
	}
	return nil, false
}

// foundUnderDesktopChild looks for the chain's first element below one of the
// special children of Desktop, such as This PC or Libraries.
func foundUnderDesktopChild(env *rerootEnv, chain []*location.Location, _ string) ([]*location.Location, bool) {
	if len(chain) == 0 {
		return nil, false
	}
	for _, kid := range env.desktopKids {
		if !kid.Flags.Has(location.FlagSpecial) {
			continue
		}
		if found, ok := env.findNamed(kid, chain[0]); ok && matches(found, chain[0]) {
			return prepend(kid, chain), true
		}
	}
	return nil, false
}

// winShellTarget applies to display-name targets: from the end, the first
// element named like a child of Desktop starts the chain.
func winShellTarget(env *rerootEnv, chain []*location.Location, target string) ([]*location.Location, bool) {
	if pathtype.Classify(target) != pathtype.WinShellPath {
		return nil, false
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, kid := range env.desktopKids {
			if sameName(kid, chain[i]) {
				return slices.Clone(chain[i:]), true
			}
		}
	}
	return nil, false
}

// fileSystemUnderDesktop applies when the target lies in the Desktop folder.
// Everything up to and including the Desktop folder in the chain is dropped,
// wherever in the chain it is buried.
func fileSystemUnderDesktop(env *rerootEnv, chain []*location.Location, target string) ([]*location.Location, bool) {
	if pathtype.Classify(target) != pathtype.FileSystemPath || !env.desktop.HasPath() {
		return nil, false
	}
	rest, ok := pathtype.HasPrefix(env.desktop.FileSystemPath, target)
	if !ok {
		return nil, false
	}
	if len(rest) == 0 {
		return env.thisPCDesktopPair()
	}
	for i, elem := range chain {
		if env.isDesktop(elem) || pathtype.Equal(elem.FileSystemPath, env.desktop.FileSystemPath) {
			return slices.Clone(chain[i+1:]), true
		}
	}
	return nil, false
}

// fileSystemUnderThisPCChild applies when a drive or library under This PC
// contains the target and the chain passes through it.
func fileSystemUnderThisPCChild(env *rerootEnv, chain []*location.Location, target string) ([]*location.Location, bool) {
	if env.thisPC == nil || pathtype.Classify(target) != pathtype.FileSystemPath {
		return nil, false
	}
	for _, kid := range env.thisPCKids {
		if !kid.HasPath() {
			continue
		}
		if _, ok := pathtype.HasPrefix(kid.FileSystemPath, target); !ok {
			continue
		}
		for i, elem := range chain {
			if pathtype.Equal(elem.FileSystemPath, kid.FileSystemPath) {
				return prepend(env.thisPC, chain[i:]), true
			}
		}
	}
	return nil, false
}

// fallbackUnderThisPC hangs the chain under This PC when This PC has a child
// named like its first element.
func fallbackUnderThisPC(env *rerootEnv, chain []*location.Location, _ string) ([]*location.Location, bool) {
	if env.thisPC == nil || len(chain) == 0 {
		return nil, false
	}
	if _, ok := env.findNamed(env.thisPC, chain[0]); ok {
		return prepend(env.thisPC, chain), true
	}
	return nil, false
}

func (env *rerootEnv) isDesktop(l *location.Location) bool {
	return l.IsDesktop() || location.SameItem(l, env.desktop)
}

func (env *rerootEnv) thisPCDesktopPair() ([]*location.Location, bool) {
	if env.thisPC == nil {
		return nil, false
	}
	return []*location.Location{env.thisPC, env.desktop}, true
}

// findNamed looks up the child of parent named like l, by name then by label.
func (env *rerootEnv) findNamed(parent, l *location.Location) (*location.Location, bool) {
	for _, name := range []string{l.Name, l.Label} {
		if name == "" {
			continue
		}
		if found, err := env.r.f.FindChild(parent, name); err == nil {
			return found, true
		}
	}
	return nil, false
}

func sameName(a, b *location.Location) bool {
	return a.MatchesName(b.Name) || a.MatchesName(b.Label)
}

// matches reports whether a and b carry the same name and denote the same
// item, either by identity or by file-system path.
func matches(a, b *location.Location) bool {
	if !sameName(a, b) {
		return false
	}
	return location.SameItem(a, b) || pathtype.Equal(a.FileSystemPath, b.FileSystemPath)
}

func prepend(head *location.Location, chain []*location.Location) []*location.Location {
	out := make([]*location.Location, 0, len(chain)+1)
	out = append(out, head)
	return append(out, chain...)
}

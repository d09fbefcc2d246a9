// Package resolver expresses locations as chains hanging off one of the two
// canonical roots, Desktop and This PC, and splices new target paths onto
// existing chains.
package resolver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-shellnav/internal/logging"
	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

// Resolver builds and re-roots location chains using a factory.
type Resolver struct {
	f   *factory.Factory
	log *logrus.Entry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for strategy tracing.
func WithLogger(l *logrus.Entry) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// New creates a resolver on top of f.
func New(f *factory.Factory, opts ...Option) *Resolver {
	r := &Resolver{
		f:   f,
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Factory returns the factory the resolver builds locations with.
func (r *Resolver) Factory() *factory.Factory {
	return r.f
}

// FindRoot returns the chain from Desktop (excluded) down to loc (included),
// one location per identifier prefix. The chain of Desktop itself is empty.
// A location known only by path or special reference is resolved first.
func (r *Resolver) FindRoot(loc *location.Location) ([]*location.Location, error) {
	if loc == nil {
		return nil, fmt.Errorf("find root: nil location: %w", shellerr.ErrInvalidArgument)
	}

	id, ok := loc.FullID()
	if !ok {
		resolved, err := r.resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("find root of %s: %w", loc, err)
		}
		loc = resolved
		if id, ok = loc.FullID(); !ok {
			return nil, fmt.Errorf("find root of %s: %w", loc, shellerr.ErrNotFound)
		}
	}

	chain := make([]*location.Location, 0, len(id))
	for n := 1; n < len(id); n++ {
		elem, err := r.f.CreateFromID(id.Prefix(n))
		if err != nil {
			return nil, fmt.Errorf("find root of %s: %w", loc, err)
		}
		chain = append(chain, elem)
	}
	if len(id) > 0 {
		chain = append(chain, loc)
	}
	return chain, nil
}

func (r *Resolver) resolve(loc *location.Location) (*location.Location, error) {
	switch {
	case loc.HasPath():
		return r.f.Create(loc.FileSystemPath)
	case loc.SpecialPathID != "":
		return r.f.Create(loc.SpecialPathID)
	case loc.ParseName != "":
		return r.f.Create(loc.ParseName)
	}
	return nil, shellerr.ErrNotFound
}

// Reroot re-expresses chain relative to a canonical root so that targetPath can
// be spliced onto it. Strategies are tried in order and the first one that
// applies wins; ErrRootNotFound means none did.
func (r *Resolver) Reroot(chain []*location.Location, targetPath string) ([]*location.Location, error) {
	env, err := r.newEnv()
	if err != nil {
		return nil, err
	}
	for _, s := range strategies {
		if out, ok := s.apply(env, chain, targetPath); ok {
			r.log.WithFields(logrus.Fields{
				"strategy": s.name,
				"target":   targetPath,
				"length":   len(out),
			}).Debug("re-rooted chain")
			return out, nil
		}
	}
	return nil, fmt.Errorf("re-root chain for %q: %w", targetPath, shellerr.ErrRootNotFound)
}

// FindCommonRoot returns the index of the deepest chain element whose path
// contains targetPath, and the part of targetPath below it.
func FindCommonRoot(chain []*location.Location, targetPath string) (index int, remainder string, ok bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		if !chain[i].HasPath() {
			continue
		}
		if rest, ok := pathtype.HasPrefix(chain[i].FileSystemPath, targetPath); ok {
			return i, pathtype.TrimSeparators(pathtype.Join(rest)), true
		}
	}
	return -1, "", false
}

// ExtendPath resolves each segment of remainder as a child of the chain's tail
// (Desktop when the chain is empty) and appends it. On the first segment that
// cannot be resolved it returns the chain extended so far and the error.
// The input slice is not modified.
func (r *Resolver) ExtendPath(chain []*location.Location, remainder string) ([]*location.Location, error) {
	out := slices.Clone(chain)
	segs := pathtype.Split(remainder)
	if len(segs) == 0 {
		return out, nil
	}

	var tail *location.Location
	if len(out) > 0 {
		tail = out[len(out)-1]
	} else {
		desktop, err := r.f.Desktop()
		if err != nil {
			return out, fmt.Errorf("extend path %q: %w", remainder, err)
		}
		tail = desktop
	}

	for _, seg := range segs {
		next, err := r.f.FindChild(tail, seg)
		if err != nil {
			return out, fmt.Errorf("extend path %q at %q: %w", remainder, seg, err)
		}
		out = append(out, next)
		tail = next
	}
	return out, nil
}

// Navigate moves from chain to targetPath: it re-roots the chain, keeps the
// deepest element containing the target and extends from there. When nothing
// in the chain contains the target, the target's own root chain is returned.
func (r *Resolver) Navigate(chain []*location.Location, targetPath string) ([]*location.Location, error) {
	targetPath = strings.TrimSpace(targetPath)
	if pathtype.Classify(targetPath) == pathtype.Unknown {
		return nil, fmt.Errorf("navigate to %q: %w", targetPath, shellerr.ErrInvalidArgument)
	}

	var rooted []*location.Location
	if len(chain) > 0 {
		var err error
		rooted, err = r.Reroot(chain, targetPath)
		switch {
		case errors.Is(err, shellerr.ErrRootNotFound):
			r.log.WithField("target", targetPath).Debug("chain has no canonical root")
			rooted = nil
		case err != nil:
			return nil, err
		}
	}

	if idx, rest, ok := FindCommonRoot(rooted, targetPath); ok {
		return r.ExtendPath(rooted[:idx+1], rest)
	}

	desktop, err := r.f.Desktop()
	if err != nil {
		return nil, fmt.Errorf("navigate to %q: %w", targetPath, err)
	}
	if desktop.HasPath() {
		if rest, ok := pathtype.HasPrefix(desktop.FileSystemPath, targetPath); ok {
			return r.ExtendPath(nil, pathtype.Join(rest))
		}
	}

	loc, err := r.f.Create(targetPath)
	if err != nil {
		return nil, fmt.Errorf("navigate to %q: %w", targetPath, err)
	}
	return r.FindRoot(loc)
}

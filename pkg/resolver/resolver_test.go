package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-shellnav/internal/testfixture"
	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/host/memhost"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	h, err := memhost.New(testfixture.Load(t))
	require.NoError(t, err)
	return New(factory.New(h))
}

func create(t *testing.T, r *Resolver, in string) *location.Location {
	t.Helper()
	loc, err := r.f.Create(in)
	require.NoError(t, err, in)
	return loc
}

func rootOf(t *testing.T, r *Resolver, in string) []*location.Location {
	t.Helper()
	chain, err := r.FindRoot(create(t, r, in))
	require.NoError(t, err, in)
	return chain
}

func chainNames(chain []*location.Location) []string {
	out := make([]string, len(chain))
	for i, l := range chain {
		out[i] = l.Name
	}
	return out
}

// buriedChain is [C:, Users, Me, Desktop, Projects] reached through This PC,
// so the Desktop folder sits in the middle of the chain.
func buriedChain(t *testing.T, r *Resolver) []*location.Location {
	t.Helper()
	chain := rootOf(t, r, `C:\Users\Me\Desktop\Projects`)
	require.Equal(t, []string{"This PC", "C:", "Users", "Me", "Desktop", "Projects"}, chainNames(chain))
	return chain[1:]
}

func TestFindRoot(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		in   string
		want []string
	}{
		{`C:\Users\Me\Documents\Reports`, []string{"This PC", "Documents", "Reports"}},
		{`D:\Data\P`, []string{"This PC", "D:", "Data", "P"}},
		{`Libraries\Music`, []string{"Libraries", "Music"}},
		{testfixture.ThisPCRef, []string{"This PC"}},
		{`\\server\share`, []string{"Network", "server", "share"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, chainNames(rootOf(t, r, tt.in)))
		})
	}
}

func TestFindRootKeepsLocation(t *testing.T) {
	r := newResolver(t)
	loc := create(t, r, `C:\Windows`)
	chain, err := r.FindRoot(loc)
	require.NoError(t, err)
	assert.Same(t, loc, chain[len(chain)-1])
}

func TestFindRootDesktop(t *testing.T) {
	r := newResolver(t)
	desktop, err := r.f.Desktop()
	require.NoError(t, err)

	chain, err := r.FindRoot(desktop)
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestFindRootResolvesPathOnlyLocation(t *testing.T) {
	r := newResolver(t)

	chain, err := r.FindRoot(location.FromPath(`D:\Data`))
	require.NoError(t, err)
	assert.Equal(t, []string{"This PC", "D:", "Data"}, chainNames(chain))

	_, err = r.FindRoot(&location.Location{Name: "nothing"})
	assert.ErrorIs(t, err, shellerr.ErrNotFound)

	_, err = r.FindRoot(location.FromPath(`Z:\gone`))
	assert.ErrorIs(t, err, shellerr.ErrNotFound)

	_, err = r.FindRoot(nil)
	assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
}

func TestFindCommonRoot(t *testing.T) {
	r := newResolver(t)
	chain := rootOf(t, r, `C:\Users\Me`)

	idx, rest, ok := FindCommonRoot(chain, `c:\users\me\Music\`)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, "Music", rest)

	idx, rest, ok = FindCommonRoot(chain, `C:\Users\Me`)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Empty(t, rest)

	idx, rest, ok = FindCommonRoot(chain, `C:\Windows\System32`)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, `Windows\System32`, rest)

	_, _, ok = FindCommonRoot(chain, `\\server\share`)
	assert.False(t, ok)

	_, _, ok = FindCommonRoot(nil, `C:\`)
	assert.False(t, ok)
}

func TestExtendPath(t *testing.T) {
	r := newResolver(t)
	pc, err := r.f.ThisPC()
	require.NoError(t, err)
	chain := []*location.Location{pc}

	out, err := r.ExtendPath(chain, `C:\Users\Me`)
	require.NoError(t, err)
	assert.Equal(t, []string{"This PC", "C:", "Users", "Me"}, chainNames(out))
	assert.Len(t, chain, 1, "input chain untouched")

	out, err = r.ExtendPath(nil, `Projects\shellnav`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Projects", "shellnav"}, chainNames(out))

	out, err = r.ExtendPath(chain, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"This PC"}, chainNames(out))
}

func TestExtendPathStopsAtFirstMiss(t *testing.T) {
	r := newResolver(t)
	pc, err := r.f.ThisPC()
	require.NoError(t, err)

	out, err := r.ExtendPath([]*location.Location{pc}, `C:\Users\Nobody\Docs`)
	assert.ErrorIs(t, err, shellerr.ErrNotFound)
	assert.Contains(t, err.Error(), "Nobody")
	assert.Equal(t, []string{"This PC", "C:", "Users"}, chainNames(out))
}

func TestRerootingScenario(t *testing.T) {
	r := newResolver(t)
	pc, err := r.f.ThisPC()
	require.NoError(t, err)
	chain := []*location.Location{pc, location.FromPath(`C:\Users\Me\Documents`)}
	target := `C:\Users\Me\Documents\Reports`

	rooted, err := r.Reroot(chain, target)
	require.NoError(t, err)

	idx, rest, ok := FindCommonRoot(rooted, target)
	require.True(t, ok)
	assert.Equal(t, "Documents", rooted[idx].Name)
	assert.Equal(t, "Reports", rest)

	out, err := r.Navigate(chain, target)
	require.NoError(t, err)
	assert.Equal(t, []string{"This PC", "Documents", "Reports"}, chainNames(out))
	assert.Equal(t, target, out[2].FileSystemPath)
}

func TestDesktopBuriedScenario(t *testing.T) {
	r := newResolver(t)
	chain := buriedChain(t, r)

	rooted, err := r.Reroot(chain, `C:\Users\Me\Desktop\Projects\shellnav`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Projects"}, chainNames(rooted))

	out, err := r.Navigate(chain, `C:\Users\Me\Desktop\Projects\shellnav`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Projects", "shellnav"}, chainNames(out))
}

func TestRerootFallsThroughStrategies(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name   string
		chain  []*location.Location
		target string
		want   []string
	}{
		{
			name:   "under a special desktop child",
			chain:  []*location.Location{create(t, r, `Libraries\Music`)},
			target: `C:\Users\Me\Music\Album`,
			want:   []string{"Libraries", "Music"},
		},
		{
			name:   "display-name target",
			chain:  []*location.Location{{Name: "Libraries"}, {Name: "Music"}},
			target: `Libraries\Music`,
			want:   []string{"Libraries", "Music"},
		},
		{
			name: "under a This PC drive",
			chain: []*location.Location{
				{Name: "DataDrive", FileSystemPath: `D:\`},
				{Name: "Data", FileSystemPath: `D:\Data`},
			},
			target: `D:\Data\P`,
			want:   []string{"This PC", "DataDrive", "Data"},
		},
		{
			name:   "named like a This PC child",
			chain:  []*location.Location{{Name: "C:"}},
			target: `Z:\x`,
			want:   []string{"This PC", "C:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Reroot(tt.chain, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chainNames(out))
		})
	}
}

func TestRerootRootNotFound(t *testing.T) {
	r := newResolver(t)
	chain := []*location.Location{{Name: "gone", FileSystemPath: `\\old\share`}}

	_, err := r.Reroot(chain, `\\old\share\x`)
	assert.ErrorIs(t, err, shellerr.ErrRootNotFound)

	_, err = r.Reroot(nil, `C:\Windows`)
	assert.ErrorIs(t, err, shellerr.ErrRootNotFound)
}

func TestNavigate(t *testing.T) {
	r := newResolver(t)

	t.Run("empty chain under desktop", func(t *testing.T) {
		out, err := r.Navigate(nil, `C:\Users\Me\Desktop\Projects\shellnav`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Projects", "shellnav"}, chainNames(out))
		assert.Len(t, out[0].ParentID, 0, "rooted directly under Desktop")
	})

	t.Run("display-name target", func(t *testing.T) {
		pc, err := r.f.ThisPC()
		require.NoError(t, err)
		out, err := r.Navigate([]*location.Location{pc}, `Libraries\Music`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Libraries", "Music"}, chainNames(out))
	})

	t.Run("through a drive", func(t *testing.T) {
		chain := []*location.Location{
			{Name: "DataDrive", FileSystemPath: `D:\`},
			{Name: "Data", FileSystemPath: `D:\Data`},
		}
		out, err := r.Navigate(chain, `D:\Data\P`)
		require.NoError(t, err)
		assert.Equal(t, []string{"This PC", "DataDrive", "Data", "P"}, chainNames(out))
	})

	t.Run("unmountable chain falls back to the target", func(t *testing.T) {
		chain := []*location.Location{{Name: "gone", FileSystemPath: `\\old\share`}}
		out, err := r.Navigate(chain, `C:\Windows`)
		require.NoError(t, err)
		assert.Equal(t, []string{"This PC", "C:", "Windows"}, chainNames(out))

		_, err = r.Navigate(chain, `\\old\share\x`)
		assert.ErrorIs(t, err, shellerr.ErrNotFound)
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := r.Navigate(nil, " ")
		assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
	})
}

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-shellnav/pkg/location"
)

func newEnv(t *testing.T, r *Resolver) *rerootEnv {
	t.Helper()
	env, err := r.newEnv()
	require.NoError(t, err)
	return env
}

func TestStrategyOrder(t *testing.T) {
	var got []string
	for _, s := range strategies {
		got = append(got, s.name)
	}
	assert.Equal(t, []string{
		"alreadyRootedAtDesktop",
		"foundUnderDesktop",
		"foundUnderDesktopChild",
		"winShellTarget",
		"fileSystemUnderDesktop",
		"fileSystemUnderThisPCChild",
		"fallbackUnderThisPC",
	}, got)
}

func TestAlreadyRootedAtDesktop(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)
	projects, err := r.f.FindChild(env.desktop, "Projects")
	require.NoError(t, err)

	out, ok := alreadyRootedAtDesktop(env, []*location.Location{env.desktop, projects}, `C:\x`)
	require.True(t, ok)
	assert.Equal(t, []string{"Projects"}, chainNames(out))

	out, ok = alreadyRootedAtDesktop(env, []*location.Location{env.desktop}, `C:\x`)
	require.True(t, ok)
	assert.Equal(t, []string{"This PC", "Desktop"}, chainNames(out))

	_, ok = alreadyRootedAtDesktop(env, buriedChain(t, r), `C:\x`)
	assert.False(t, ok, "a buried Desktop folder is not the Desktop root")
}

func TestFoundUnderDesktop(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)

	out, ok := foundUnderDesktop(env, rootOf(t, r, `C:\Users\Me\Music`), `C:\x`)
	require.True(t, ok)
	assert.Equal(t, []string{"Me", "Music"}, chainNames(out), "the deepest desktop child wins")

	_, ok = foundUnderDesktop(env, []*location.Location{{Name: "Projects"}}, `C:\x`)
	assert.False(t, ok, "a name alone is not enough")
}

func TestFoundUnderDesktopChild(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)

	docs := create(t, r, `C:\Users\Me\Documents`)
	out, ok := foundUnderDesktopChild(env, []*location.Location{docs}, `C:\x`)
	require.True(t, ok)
	assert.Equal(t, []string{"This PC", "Documents"}, chainNames(out))

	_, ok = foundUnderDesktopChild(env, []*location.Location{{Name: "C:"}}, `C:\x`)
	assert.False(t, ok, "name matches but the item differs")

	_, ok = foundUnderDesktopChild(env, nil, `C:\x`)
	assert.False(t, ok)
}

func TestWinShellTarget(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)
	chain := []*location.Location{{Name: "Stuff"}, {Name: "network"}, {Name: "server"}}

	out, ok := winShellTarget(env, chain, `Network\server`)
	require.True(t, ok)
	assert.Equal(t, []string{"network", "server"}, chainNames(out))

	_, ok = winShellTarget(env, chain, `C:\Network\server`)
	assert.False(t, ok, "only display-name targets")
}

func TestFileSystemUnderDesktop(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)
	chain := buriedChain(t, r)

	out, ok := fileSystemUnderDesktop(env, chain, `C:\Users\Me\Desktop\Projects\shellnav`)
	require.True(t, ok)
	assert.Equal(t, []string{"Projects"}, chainNames(out))

	out, ok = fileSystemUnderDesktop(env, chain, `c:\users\me\desktop`)
	require.True(t, ok)
	assert.Equal(t, []string{"This PC", "Desktop"}, chainNames(out))
	assert.True(t, out[1].IsDesktop())

	_, ok = fileSystemUnderDesktop(env, chain, `C:\Users\Me\Music`)
	assert.False(t, ok)

	_, ok = fileSystemUnderDesktop(env, rootOf(t, r, `D:\Data`), `C:\Users\Me\Desktop\notes.zip`)
	assert.False(t, ok, "no Desktop folder in the chain")
}

func TestFileSystemUnderThisPCChild(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)
	chain := rootOf(t, r, `C:\Users\Me`)[1:]

	out, ok := fileSystemUnderThisPCChild(env, chain, `C:\Users\Me\Music`)
	require.True(t, ok)
	assert.Equal(t, []string{"This PC", "C:", "Users", "Me"}, chainNames(out))

	_, ok = fileSystemUnderThisPCChild(env, chain, `D:\Data`)
	assert.False(t, ok, "the drive is not in the chain")

	_, ok = fileSystemUnderThisPCChild(env, chain, `Libraries\Music`)
	assert.False(t, ok)
}

func TestFallbackUnderThisPC(t *testing.T) {
	r := newResolver(t)
	env := newEnv(t, r)

	out, ok := fallbackUnderThisPC(env, []*location.Location{{Name: "Local Disk (C:)"}}, `Z:\x`)
	require.True(t, ok)
	assert.Equal(t, []string{"This PC", "Local Disk (C:)"}, chainNames(out))

	_, ok = fallbackUnderThisPC(env, []*location.Location{{Name: "E:"}}, `Z:\x`)
	assert.False(t, ok)
}

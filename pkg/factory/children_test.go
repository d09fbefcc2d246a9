package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

func labels(seq func(func(*location.Location) bool)) []string {
	var out []string
	for l := range seq {
		out = append(out, l.Label)
	}
	return out
}

func TestGetChildItems(t *testing.T) {
	f := newFactory(t)
	desktop, err := f.Desktop()
	require.NoError(t, err)

	all := labels(f.GetChildItems(desktop, "", NameOnly))
	assert.Equal(t, []string{"This PC", "Libraries", "Network", "Recycle Bin", "Me", "Projects", "notes.zip"}, all)

	// Restartable: a second pass yields the same items.
	assert.Equal(t, all, labels(f.GetChildItems(desktop, "", NameOnly)))
}

func TestGetChildItemsMask(t *testing.T) {
	f := newFactory(t)
	pc, err := f.ThisPC()
	require.NoError(t, err)

	tests := []struct {
		name string
		mask string
		mode FilterMode
		want []string
	}{
		{"label wildcard", "local*", NameOnly, []string{"Local Disk (C:)"}},
		{"name wildcard", "?:", NameOnly, []string{"Local Disk (C:)", "Data (D:)"}},
		{"no parse name by default", `D:\`, NameOnly, nil},
		{"parse name", `D:\`, NameOrParseName, []string{"Data (D:)"}},
		{"no match", "zzz*", NameOrParseName, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(f.GetChildItems(pc, tt.mask, tt.mode)))
		})
	}
}

func TestGetChildItemsPopulatesFields(t *testing.T) {
	f := newFactory(t)
	pc, err := f.ThisPC()
	require.NoError(t, err)

	var docs *location.Location
	for l := range f.GetChildItems(pc, "Documents", NameOnly) {
		docs = l
	}
	require.NotNil(t, docs)
	assert.Equal(t, `C:\Users\Me\Documents`, docs.FileSystemPath)
	assert.Len(t, docs.ParentID, 1)
	assert.Len(t, docs.ChildID, 1)
}

func TestGetChildItemsEarlyBreak(t *testing.T) {
	f := newFactory(t)
	desktop, err := f.Desktop()
	require.NoError(t, err)

	var first *location.Location
	for l := range f.GetChildItems(desktop, "", NameOnly) {
		first = l
		break
	}
	require.NotNil(t, first)
	assert.Equal(t, "This PC", first.Name)
}

func TestGetChildItemsEndsQuietly(t *testing.T) {
	f := newFactory(t)

	ghost := &location.Location{Name: "ghost", ChildID: nil}
	assert.Empty(t, labels(f.GetChildItems(ghost, "", NameOnly)))

	gone := location.FromPath(`Z:\gone`)
	assert.Empty(t, labels(f.GetChildItems(gone, "", NameOnly)))

	leaf, err := f.Create(`C:\Users\Me\Documents\budget.xlsx`)
	require.NoError(t, err)
	assert.Empty(t, labels(f.GetChildItems(leaf, "", NameOnly)))
}

func TestGetChildItemsOfPathOnlyLocation(t *testing.T) {
	f := newFactory(t)
	got := labels(f.GetChildItems(location.FromPath(`D:\Data`), "", NameOnly))
	assert.Equal(t, []string{"P"}, got)
}

func TestFindChild(t *testing.T) {
	f := newFactory(t)
	pc, err := f.ThisPC()
	require.NoError(t, err)

	byName, err := f.FindChild(pc, "c:")
	require.NoError(t, err)
	assert.Equal(t, `C:\`, byName.FileSystemPath)

	byLabel, err := f.FindChild(pc, "DATA (D:)")
	require.NoError(t, err)
	assert.Equal(t, `D:\`, byLabel.FileSystemPath)

	byParseName, err := f.FindChild(pc, `D:\`)
	require.NoError(t, err)
	assert.True(t, location.SameItem(byLabel, byParseName))

	_, err = f.FindChild(pc, "E:")
	assert.ErrorIs(t, err, shellerr.ErrNotFound)

	_, err = f.FindChild(nil, "E:")
	assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
}

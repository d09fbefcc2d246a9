package idlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

func sample() IDList {
	return New([]byte{0x1f, 0x50}, []byte("C:\\"), []byte{0x31, 'U', 's', 'e', 'r', 's'})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list IDList
	}{
		{"desktop", Desktop()},
		{"single", New([]byte{0x1f})},
		{"empty segment", New([]byte{})},
		{"nested", sample()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.list)
			require.NoError(t, err)

			got, err := Decode(raw)
			require.NoError(t, err)
			assert.True(t, Equal(tt.list, got), "got %s want %s", got, tt.list)
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	raw, err := Encode(New([]byte{0xAA, 0xBB}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x00, 0xAA, 0xBB, 0x00, 0x00}, raw)

	raw, err = Encode(Desktop())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, raw)
}

func TestEncodeOversizedSegment(t *testing.T) {
	_, err := Encode(New(make([]byte, MaxSegmentLen+1)))
	assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty input", nil},
		{"missing terminator", []byte{0x03, 0x00, 0x01}},
		{"size one", []byte{0x01, 0x00, 0x00, 0x00}},
		{"overrun", []byte{0x09, 0x00, 0x01, 0x00, 0x00}},
		{"trailing bytes", []byte{0x00, 0x00, 0x07}},
		{"half size", []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
		})
	}
}

func TestDecodeDoesNotAlias(t *testing.T) {
	raw := []byte{0x03, 0x00, 0x41, 0x00, 0x00}
	l, err := Decode(raw)
	require.NoError(t, err)

	raw[2] = 0x42
	assert.Equal(t, Segment{0x41}, l[0])
}

func TestSplitCombineInverse(t *testing.T) {
	for n := 1; n <= len(sample()); n++ {
		l := sample().Prefix(n)
		parent, child, ok := SplitLast(l)
		require.True(t, ok)
		assert.Len(t, child, 1)
		assert.Len(t, parent, n-1)

		joined, err := Combine(parent, child)
		require.NoError(t, err)
		assert.True(t, Equal(l, joined))
	}
}

func TestSplitLastDesktop(t *testing.T) {
	parent, child, ok := SplitLast(Desktop())
	assert.False(t, ok)
	assert.Nil(t, parent)
	assert.Nil(t, child)
}

func TestSplitLastTopLevel(t *testing.T) {
	parent, child, ok := SplitLast(New([]byte{0x1f}))
	require.True(t, ok)
	assert.NotNil(t, parent)
	assert.True(t, parent.IsDesktop())
	assert.Equal(t, IDList{Segment{0x1f}}, child)
}

func TestCombineRejectsEmptyChild(t *testing.T) {
	_, err := Combine(sample(), Desktop())
	assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
}

func TestCombineDoesNotAlias(t *testing.T) {
	parent := New([]byte{0x01})
	child := New([]byte{0x02})
	joined, err := Combine(parent, child)
	require.NoError(t, err)

	parent[0][0] = 0xFF
	child[0][0] = 0xFF
	assert.Equal(t, IDList{Segment{0x01}, Segment{0x02}}, joined)
}

func TestPrefixRelations(t *testing.T) {
	l := sample()
	assert.True(t, l.HasPrefix(Desktop()))
	assert.True(t, l.HasPrefix(l))
	assert.True(t, l.Prefix(1).IsParentOf(l))
	assert.False(t, l.IsParentOf(l))
	assert.False(t, l.IsParentOf(l.Prefix(2)))
	assert.True(t, Desktop().IsParentOf(l))

	other := New([]byte{0x1f, 0x50}, []byte("D:\\"))
	assert.False(t, l.HasPrefix(other))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, Desktop()))
	assert.True(t, Equal(sample(), sample()))
	assert.False(t, Equal(sample(), sample().Prefix(2)))
	assert.False(t, Equal(New([]byte{1}), New([]byte{2})))
}

func TestKeyAndParseHex(t *testing.T) {
	l := sample()
	got, err := ParseHex(l.Key())
	require.NoError(t, err)
	assert.True(t, Equal(l, got))

	assert.Equal(t, "0000", Desktop().Key())

	_, err = ParseHex("zz")
	assert.ErrorIs(t, err, shellerr.ErrInvalidArgument)
}

func TestString(t *testing.T) {
	assert.Equal(t, "<desktop>", Desktop().String())
	assert.Equal(t, "aa.bbcc", New([]byte{0xaa}, []byte{0xbb, 0xcc}).String())
}

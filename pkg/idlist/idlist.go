// Package idlist encodes and manipulates shell item identifier lists.
//
// An ID list is an ordered sequence of opaque segments. Each segment only means
// something relative to the item before it, so a full list read from the start
// identifies one item below the Desktop root. The empty list is Desktop itself.
//
// The binary form is the shell item-ID layout: every segment is prefixed with
// its size as a little-endian uint16 (the two size bytes included) and the list
// ends with a zero size.
package idlist

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

const (
	sizeLen = 2
	// MaxSegmentLen is the largest payload a single segment can frame.
	MaxSegmentLen = 0xFFFF - sizeLen
)

// Segment is one opaque item identifier, meaningful only under its parent.
type Segment []byte

// IDList is a sequence of segments from the Desktop root. A nil or empty list is Desktop.
type IDList []Segment

// Desktop returns the empty, non-nil list that identifies the Desktop root.
func Desktop() IDList {
	return IDList{}
}

// New builds a list from raw segments, copying each one.
func New(segments ...[]byte) IDList {
	l := make(IDList, len(segments))
	for i, s := range segments {
		l[i] = append(Segment(nil), s...)
	}
	return l
}

// Decode parses the binary item-ID layout into a list.
func Decode(raw []byte) (IDList, error) {
	l := IDList{}
	off := 0
	for {
		if len(raw)-off < sizeLen {
			return nil, fmt.Errorf("decode id list: missing terminator at offset %d: %w", off, shellerr.ErrInvalidArgument)
		}
		size := int(binary.LittleEndian.Uint16(raw[off:]))
		if size == 0 {
			off += sizeLen
			break
		}
		if size < sizeLen {
			return nil, fmt.Errorf("decode id list: segment size %d at offset %d: %w", size, off, shellerr.ErrInvalidArgument)
		}
		if off+size > len(raw) {
			return nil, fmt.Errorf("decode id list: segment at offset %d overruns input: %w", off, shellerr.ErrInvalidArgument)
		}
		l = append(l, append(Segment(nil), raw[off+sizeLen:off+size]...))
		off += size
	}
	if off != len(raw) {
		return nil, fmt.Errorf("decode id list: %d trailing bytes: %w", len(raw)-off, shellerr.ErrInvalidArgument)
	}
	return l, nil
}

// Encode writes l in the binary item-ID layout.
func Encode(l IDList) ([]byte, error) {
	n := sizeLen
	for i, s := range l {
		if len(s) > MaxSegmentLen {
			return nil, fmt.Errorf("encode id list: segment %d is %d bytes: %w", i, len(s), shellerr.ErrInvalidArgument)
		}
		n += sizeLen + len(s)
	}
	out := make([]byte, 0, n)
	for _, s := range l {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(s)+sizeLen))
		out = append(out, s...)
	}
	return binary.LittleEndian.AppendUint16(out, 0), nil
}

// Combine appends child to parent. The child must hold at least one segment.
func Combine(parent, child IDList) (IDList, error) {
	if len(child) == 0 {
		return nil, fmt.Errorf("combine id list: empty child: %w", shellerr.ErrInvalidArgument)
	}
	out := make(IDList, 0, len(parent)+len(child))
	out = append(out, parent.Clone()...)
	return append(out, child.Clone()...), nil
}

// SplitLast splits l into everything but the last segment and the last segment.
// The empty list has no split and reports ok == false with both halves nil.
// The parent of a one-segment list is the empty Desktop list.
func SplitLast(l IDList) (parent, child IDList, ok bool) {
	if len(l) == 0 {
		return nil, nil, false
	}
	parent = l[:len(l)-1].Clone()
	child = l[len(l)-1:].Clone()
	return parent, child, true
}

// Equal reports whether a and b hold byte-equal segments in the same order.
func Equal(a, b IDList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies l. Cloning nil yields the empty list.
func (l IDList) Clone() IDList {
	out := make(IDList, len(l))
	for i, s := range l {
		out[i] = append(Segment(nil), s...)
	}
	return out
}

// HasPrefix reports whether p is a leading run of l. Every list has the empty prefix.
func (l IDList) HasPrefix(p IDList) bool {
	if len(p) > len(l) {
		return false
	}
	return Equal(l[:len(p)], p)
}

// IsParentOf reports whether l is a proper prefix of other.
func (l IDList) IsParentOf(other IDList) bool {
	return len(l) < len(other) && other.HasPrefix(l)
}

// Prefix returns a copy of the first n segments.
func (l IDList) Prefix(n int) IDList {
	if n > len(l) {
		n = len(l)
	}
	return l[:n].Clone()
}

// IsDesktop reports whether l is the empty Desktop list.
func (l IDList) IsDesktop() bool {
	return len(l) == 0
}

// Key returns a stable string usable as a map key; it is the hex form of the encoding.
func (l IDList) Key() string {
	raw, err := Encode(l)
	if err != nil {
		// Oversized segments cannot be framed; fall back to a per-segment form.
		parts := make([]string, len(l))
		for i, s := range l {
			parts[i] = hex.EncodeToString(s)
		}
		return "x:" + strings.Join(parts, ".")
	}
	return hex.EncodeToString(raw)
}

// String renders the segments as dot-separated hex, "<desktop>" for the empty list.
func (l IDList) String() string {
	if len(l) == 0 {
		return "<desktop>"
	}
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = hex.EncodeToString(s)
	}
	return strings.Join(parts, ".")
}

// ParseHex decodes the hex form of an encoded list, as printed by Key.
func ParseHex(s string) (IDList, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse id list %q: %v: %w", s, err, shellerr.ErrInvalidArgument)
	}
	return Decode(raw)
}

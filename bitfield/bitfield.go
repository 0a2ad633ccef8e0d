// Package bitfield provides bit-range extraction and insertion within
// fixed-width words.
//
// Every CSR layout in this module is built on the same codec: a field
// is an inclusive hi..lo bit range, read with Get and written with Set.
// Set preserves every bit outside the range. Fields declared for one
// register layout must not overlap; CheckLayout verifies that.
package bitfield

import (
	"fmt"
	"sort"
)

// Field is an inclusive hi..lo bit range within a word of up to 64 bits.
type Field struct {
	Hi uint8 // most significant bit of the range
	Lo uint8 // least significant bit of the range
}

// Bit returns a single-bit field at position n.
func Bit(n uint8) Field {
	return Field{Hi: n, Lo: n}
}

// Width returns the number of bits the field spans.
func (f Field) Width() uint8 {
	return f.Hi - f.Lo + 1
}

// Mask returns the field's bits set in place within the word.
func (f Field) Mask() uint64 {
	width := uint(f.Width())
	if width >= 64 {
		return ^uint64(0)
	}
	return ((uint64(1) << width) - 1) << f.Lo
}

// Get extracts the field from word, right-aligned and zero-extended.
func (f Field) Get(word uint64) uint64 {
	return (word & f.Mask()) >> f.Lo
}

// Set returns word with the field replaced by value. Bits of value
// beyond the field width are discarded; all bits of word outside the
// field are preserved exactly.
func (f Field) Set(word, value uint64) uint64 {
	mask := f.Mask()
	return (word &^ mask) | ((value << f.Lo) & mask)
}

// IsSet reports whether any bit of the field is set in word.
func (f Field) IsSet(word uint64) bool {
	return word&f.Mask() != 0
}

// CheckLayout validates that every named field fits within a word of
// the given width and that no two fields overlap. Layouts are fixed at
// construction time, so a failure here is a programming error; the
// check exists for layout tests, not for runtime use.
func CheckLayout(width uint8, fields map[string]Field) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var seen uint64
	for _, name := range names {
		f := fields[name]
		if f.Hi < f.Lo {
			return fmt.Errorf("field %s: hi %d below lo %d", name, f.Hi, f.Lo)
		}
		if f.Hi >= width {
			return fmt.Errorf("field %s: bit %d outside %d-bit word", name, f.Hi, width)
		}
		if seen&f.Mask() != 0 {
			return fmt.Errorf("field %s overlaps an earlier field", name)
		}
		seen |= f.Mask()
	}
	return nil
}

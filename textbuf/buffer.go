// Package textbuf provides a mutable, indexable text buffer with simple
// resizable-character-array semantics. Unlike strings.Builder it supports
// in-place edits: overwriting, removal, and reversal by rune position.
package textbuf

import (
	"fmt"
	"iter"
)

// Buffer is a mutable string backed by a rune slice. The zero value is an
// empty buffer ready for use. Indexing is by rune, not by byte.
type Buffer struct {
	data []rune
}

// New creates a Buffer holding the runes of s.
func New(s string) *Buffer {
	return &Buffer{data: []rune(s)}
}

// Append adds the runes of s to the end of the buffer.
func (b *Buffer) Append(s string) {
	b.data = append(b.data, []rune(s)...)
}

// AppendRune adds a single rune to the end of the buffer.
func (b *Buffer) AppendRune(r rune) {
	b.data = append(b.data, r)
}

// Extend adds the contents of another buffer.
func (b *Buffer) Extend(other *Buffer) {
	b.data = append(b.data, other.data...)
}

// Pop removes and returns the last rune. It fails on an empty buffer.
func (b *Buffer) Pop() (rune, error) {
	if len(b.data) == 0 {
		return 0, fmt.Errorf("textbuf: pop from empty buffer")
	}
	r := b.data[len(b.data)-1]
	b.data = b.data[:len(b.data)-1]
	return r, nil
}

// Reverse reverses the buffer in place.
func (b *Buffer) Reverse() {
	for i, j := 0, len(b.data)-1; i < j; i, j = i+1, j-1 {
		b.data[i], b.data[j] = b.data[j], b.data[i]
	}
}

// At returns the rune at position i.
func (b *Buffer) At(i int) (rune, error) {
	if err := b.check(i); err != nil {
		return 0, err
	}
	return b.data[i], nil
}

// Set overwrites the buffer starting at position i with the runes of s.
// Runes extending past the end of the buffer are appended, so the buffer
// grows when s does not fit.
func (b *Buffer) Set(i int, s string) error {
	if err := b.check(i); err != nil {
		return err
	}
	for _, r := range s {
		if i < len(b.data) {
			b.data[i] = r
		} else {
			b.data = append(b.data, r)
		}
		i++
	}
	return nil
}

// Remove deletes the rune at position i.
func (b *Buffer) Remove(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.data = append(b.data[:i], b.data[i+1:]...)
	return nil
}

// RemoveRange deletes positions [i, j). It fails when the range does not
// lie within the buffer or j < i.
func (b *Buffer) RemoveRange(i, j int) error {
	if i < 0 || j < i || j > len(b.data) {
		return fmt.Errorf("textbuf: range [%d, %d) out of bounds for length %d", i, j, len(b.data))
	}
	b.data = append(b.data[:i], b.data[j:]...)
	return nil
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// String returns the buffer's contents as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

// Runes returns an iterator over the buffer's runes in order. Mutating the
// buffer during iteration is not supported.
func (b *Buffer) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range b.data {
			if !yield(r) {
				return
			}
		}
	}
}

func (b *Buffer) check(i int) error {
	if i < 0 || i >= len(b.data) {
		return fmt.Errorf("textbuf: index %d out of bounds for length %d", i, len(b.data))
	}
	return nil
}

package docstate

// Buffer is a growable, owned byte sequence with an explicit split
// between allocated capacity and logical content length. Bytes past
// Len() are stale and never exposed.
//
// Capacity never shrinks while a document is being edited; growth
// doubles the required size so repeated small edits amortize to O(1)
// allocations.
type Buffer struct {
	data []byte
	used int
}

// Len returns the logical content length.
func (b *Buffer) Len() int { return b.used }

// Cap returns the allocated capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the live content slice. The slice aliases the buffer's
// backing storage and is invalidated by the next mutation.
func (b *Buffer) Bytes() []byte { return b.data[:b.used] }

// String returns a copy of the content as a string.
func (b *Buffer) String() string { return string(b.data[:b.used]) }

// Splice replaces bytes [start, end) of the content with repl.
// start and end must satisfy 0 <= start <= end <= Len(); callers
// resolve and validate offsets before splicing.
//
// The copy ordering is owned here: when editing in place, the upper
// remainder is moved to its final position before the replacement is
// written, so a replacement that is shorter or longer than the span it
// replaces cannot clobber bytes the remainder still has to vacate.
func (b *Buffer) Splice(start, end int, repl []byte) {
	newUsed := start + len(repl) + (b.used - end)

	if newUsed > len(b.data) {
		grown := make([]byte, newUsed*2)
		copy(grown, b.data[:start])
		copy(grown[start:], repl)
		copy(grown[start+len(repl):], b.data[end:b.used])
		b.data = grown
		b.used = newUsed
		return
	}

	// In place: lower is already positioned. copy is memmove-safe, so
	// moving upper within the same backing array preserves its bytes.
	copy(b.data[start+len(repl):newUsed], b.data[end:b.used])
	copy(b.data[start:], repl)
	b.used = newUsed
}

// SetContent replaces the whole content, growing (with doubling) only
// when the replacement exceeds the current capacity.
func (b *Buffer) SetContent(text []byte) {
	if len(text) > len(b.data) {
		b.data = make([]byte, len(text)*2)
	}
	copy(b.data, text)
	b.used = len(text)
}

// Release drops the backing storage. Used when a document leaves
// client ownership; the next SetContent reallocates.
func (b *Buffer) Release() {
	b.data = nil
	b.used = 0
}

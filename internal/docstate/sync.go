package docstate

import (
	"bytes"
	"fmt"
)

// Position is a zero-based line/character location. Characters count
// bytes within the line.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open [Start, End) span.
type Range struct {
	Start Position
	End   Position
}

// Change is one content change event. A nil Range means Text replaces
// the whole document; otherwise Text replaces the bytes the range
// resolves to against the buffer state left by the previous change.
type Change struct {
	Range *Range
	Text  string
}

// applyChange mutates the buffer for a single change. Range resolution
// is strict: a line past the last line or a character past the end of
// its line fails rather than clamps, leaving the buffer untouched by
// this change.
func applyChange(buf *Buffer, c Change) error {
	if c.Range == nil {
		buf.SetContent([]byte(c.Text))
		return nil
	}

	content := buf.Bytes()
	start, err := resolveOffset(content, c.Range.Start)
	if err != nil {
		return err
	}
	end, err := resolveOffset(content, c.Range.End)
	if err != nil {
		return err
	}
	if end < start {
		return fmt.Errorf("%w: end %d before start %d", ErrRangeOutOfBounds, end, start)
	}

	buf.Splice(start, end, []byte(c.Text))
	return nil
}

// resolveOffset converts a position to an absolute byte offset within
// content. The position one past the final byte is valid (an append);
// anything beyond the tracked lines or line lengths is not.
func resolveOffset(content []byte, pos Position) (int, error) {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := indexByte(content, offset, '\n')
		if next < 0 {
			return 0, fmt.Errorf("%w: line %d beyond content", ErrRangeOutOfBounds, pos.Line)
		}
		offset = next + 1
	}

	lineEnd := indexByte(content, offset, '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	}
	target := offset + int(pos.Character)
	if target > lineEnd {
		return 0, fmt.Errorf("%w: character %d beyond line %d", ErrRangeOutOfBounds, pos.Character, pos.Line)
	}
	return target, nil
}

// indexByte returns the index of the first c at or after from, or -1.
func indexByte(b []byte, from int, c byte) int {
	if i := bytes.IndexByte(b[from:], c); i >= 0 {
		return from + i
	}
	return -1
}

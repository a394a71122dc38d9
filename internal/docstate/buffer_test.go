package docstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSetContent(t *testing.T) {
	var b Buffer
	b.SetContent([]byte("hello"))

	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 5)
}

func TestBufferSetContentReusesAllocation(t *testing.T) {
	var b Buffer
	b.SetContent([]byte("a longer initial text"))
	capBefore := b.Cap()

	b.SetContent([]byte("short"))

	assert.Equal(t, "short", b.String())
	assert.Equal(t, capBefore, b.Cap(), "capacity must not shrink on overwrite")
}

func TestBufferSpliceInPlaceShorter(t *testing.T) {
	var b Buffer
	b.SetContent([]byte("hello cruel world"))
	capBefore := b.Cap()

	// "cruel " removed: replacement shorter than the replaced span, so
	// the upper remainder moves left over bytes it is read from.
	b.Splice(6, 12, nil)

	assert.Equal(t, "hello world", b.String())
	assert.Equal(t, capBefore, b.Cap())
}

func TestBufferSpliceInPlaceLonger(t *testing.T) {
	var b Buffer
	b.SetContent([]byte("ab12ef"))

	// Capacity is 12 after doubling, so a net +2 edit stays in place
	// and the remainder moves right before the middle is written.
	b.Splice(2, 4, []byte("wxyz"))

	assert.Equal(t, "abwxyzef", b.String())
}

func TestBufferSpliceGrowsWithDoubling(t *testing.T) {
	b := Buffer{data: make([]byte, 10), used: 8}
	copy(b.data, "abcdefgh")

	// Result needs 12 bytes; capacity 10 forces a doubling allocation.
	b.Splice(4, 4, []byte("-XYZ-"))

	require.Equal(t, "abcd-XYZ-efgh", b.String())
	assert.Equal(t, 13, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 26)
}

func TestBufferCapacityExampleFromEditorTrace(t *testing.T) {
	// capacity=10, used=8; one incremental change whose result needs 12
	// bytes → capacity >= 24 and content is lower+middle+upper exactly.
	b := Buffer{data: make([]byte, 10), used: 8}
	copy(b.data, "aaaabbbb")

	b.Splice(4, 4, []byte("mmmm"))

	require.Equal(t, 12, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 24)
	assert.Equal(t, "aaaammmmbbbb", b.String())
}

func TestBufferUsedNeverExceedsCapacity(t *testing.T) {
	var b Buffer
	edits := []struct {
		start, end int
		text       string
	}{
		{0, 0, "package main\n"},
		{8, 12, "demo"},
		{0, 0, "// hi\n"},
		{3, 5, ""},
		{0, 17, "x"},
	}
	b.SetContent(nil)
	for _, e := range edits {
		b.Splice(e.start, e.end, []byte(e.text))
		require.LessOrEqual(t, b.Len(), b.Cap())
	}
}

func TestBufferRelease(t *testing.T) {
	var b Buffer
	b.SetContent([]byte("content"))
	b.Release()

	assert.Zero(t, b.Len())
	assert.Zero(t, b.Cap())

	// Reusable after release.
	b.SetContent([]byte("again"))
	assert.Equal(t, "again", b.String())
}

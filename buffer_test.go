package termline

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeString(b *Buffer, s string) {
	for i := 0; i < len(s); i++ {
		b.Apply(Printable(s[i]))
	}
}

func TestNewBuffer_invalidCapacity(t *testing.T) {
	assert.Panics(t, func() { NewBuffer(0) })
	assert.Panics(t, func() { NewBuffer(-1) })
}

func TestBuffer_insert(t *testing.T) {
	b := NewBuffer(8)
	assert.Equal(t, EventBufferChanged, b.Apply(Printable('a')))
	assert.Equal(t, EventBufferChanged, b.Apply(Printable('b')))
	assert.Equal(t, EventCursorMoved, b.Apply(Key{Code: KeyLeft}))
	assert.Equal(t, EventBufferChanged, b.Apply(Printable('c')))
	assert.Equal(t, "acb", b.String())
	assert.Equal(t, 2, b.Cursor())
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_full(t *testing.T) {
	b := NewBuffer(3)
	typeString(b, "xyz")
	require.Equal(t, 3, b.Len())
	assert.Equal(t, EventBufferFull, b.Apply(Printable('q')))
	assert.Equal(t, "xyz", b.String())
	assert.Equal(t, 3, b.Cursor())

	// still full with the cursor in the middle
	b.Apply(Key{Code: KeyLeft})
	assert.Equal(t, EventBufferFull, b.Apply(Printable('q')))
	assert.Equal(t, "xyz", b.String())
	assert.Equal(t, 2, b.Cursor())
}

func TestBuffer_backspace(t *testing.T) {
	b := NewBuffer(8)
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyBackspace}))

	typeString(b, "abcd")
	b.Apply(Key{Code: KeyLeft})
	b.Apply(Key{Code: KeyLeft})
	assert.Equal(t, EventBufferChanged, b.Apply(Key{Code: KeyBackspace}))
	assert.Equal(t, "acd", b.String())
	assert.Equal(t, 1, b.Cursor())

	b.Apply(Key{Code: KeyLeft})
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyBackspace}))
	assert.Equal(t, "acd", b.String())
}

func TestBuffer_delete(t *testing.T) {
	b := NewBuffer(8)
	typeString(b, "abcd")
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyDelete}))
	assert.Equal(t, "abcd", b.String())

	b.Apply(Key{Code: KeyLeft})
	b.Apply(Key{Code: KeyLeft})
	assert.Equal(t, EventBufferChanged, b.Apply(Key{Code: KeyDelete}))
	assert.Equal(t, "abd", b.String())
	assert.Equal(t, 2, b.Cursor())
}

func TestBuffer_cursorBounds(t *testing.T) {
	b := NewBuffer(4)
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyLeft}))
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyRight}))
	typeString(b, "ab")
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyRight}))
	assert.Equal(t, EventCursorMoved, b.Apply(Key{Code: KeyLeft}))
	assert.Equal(t, EventCursorMoved, b.Apply(Key{Code: KeyRight}))
	assert.Equal(t, 2, b.Cursor())
}

func TestBuffer_Apply_events(t *testing.T) {
	b := NewBuffer(4)
	assert.Equal(t, EventEmptyLine, b.Apply(Key{Code: KeyEnter}))
	assert.Equal(t, EventRecallPrevious, b.Apply(Key{Code: KeyUp}))
	assert.Equal(t, EventRecallNext, b.Apply(Key{Code: KeyDown}))
	assert.Equal(t, EventInterrupted, b.Apply(Key{Code: KeyInterrupt}))
	assert.Equal(t, EventEndOfInput, b.Apply(Key{Code: KeyEndOfInput}))
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyTab}))
	assert.Equal(t, EventNoChange, b.Apply(Key{Code: KeyEscape}))
	assert.Equal(t, EventNoChange, b.Apply(Key{}))
	typeString(b, "a")
	assert.Equal(t, EventLineReady, b.Apply(Key{Code: KeyEnter}))
	// enter never mutates
	assert.Equal(t, "a", b.String())
}

func TestBuffer_invariants(t *testing.T) {
	keys := []Key{
		{Code: KeyBackspace},
		{Code: KeyDelete},
		{Code: KeyLeft},
		{Code: KeyRight},
		{Code: KeyTab},
		{Code: KeyUp},
		Printable('x'),
		Printable('y'),
		Printable('z'),
	}
	r := rand.New(rand.NewPCG(1, 2))
	b := NewBuffer(5)
	for i := range 5000 {
		key := keys[r.IntN(len(keys))]
		beforeLen := b.Len()
		event := b.Apply(key)
		if b.Cursor() < 0 || b.Cursor() > b.Len() || b.Len() > b.Cap() {
			t.Fatalf("iteration %d: invariant violated after %s: len=%d cursor=%d", i, key, b.Len(), b.Cursor())
		}
		switch event {
		case EventNoChange, EventCursorMoved, EventBufferFull, EventRecallPrevious:
			if b.Len() != beforeLen {
				t.Fatalf("iteration %d: %s changed the length", i, event)
			}
		}
	}
}

func TestBuffer_Take(t *testing.T) {
	b := NewBuffer(8)
	typeString(b, "help")
	line := b.Take()
	assert.Equal(t, []byte("help"), line)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cursor())

	// the copy must not alias the storage
	typeString(b, "zzzz")
	assert.Equal(t, []byte("help"), line)
}

func TestBuffer_TakeString_invalidUTF8(t *testing.T) {
	b := NewBuffer(8)
	require.NoError(t, b.Replace([]byte{'a', 0xff, 'b'}))
	line, err := b.TakeString()
	assert.Empty(t, line)
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, []byte{'a', 0xff, 'b'}, encErr.Line)
	assert.Equal(t, 0, b.Len())
}

func TestBuffer_Replace(t *testing.T) {
	b := NewBuffer(4)
	typeString(b, "ab")
	b.Apply(Key{Code: KeyLeft})

	require.NoError(t, b.Replace([]byte("wxyz")))
	assert.Equal(t, "wxyz", b.String())
	assert.Equal(t, 4, b.Cursor())

	assert.ErrorIs(t, b.Replace([]byte("12345")), ErrCapacityExceeded)
	assert.Equal(t, "wxyz", b.String())

	require.NoError(t, b.Replace(nil))
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cursor())
}

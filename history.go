package termline

import (
	"bytes"
	"iter"
)

// HistoryConfig models the configuration of a History.
type HistoryConfig struct {
	// MaxEntries is the number of lines retained, the oldest line is evicted
	// first. Defaults to 10, if <= 0.
	MaxEntries int

	// EntryCapacity is the maximum length of a single line, in bytes. Longer
	// lines are not recorded. Defaults to DefaultBufferCapacity, if <= 0,
	// except with WithHistoryConfig, where it defaults to (and is limited
	// to) the buffer capacity of the Terminal.
	EntryCapacity int

	// Deduplicate skips recording a line equal to the most recent entry.
	Deduplicate bool
}

// DefaultHistoryConfig returns the default configuration: 10 entries, of
// the default entry capacity, with deduplication enabled.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		MaxEntries:  10,
		Deduplicate: true,
	}
}

// History is a bounded, oldest-to-newest store of accepted lines, with a
// browse position used to recall them.
//
// All storage is allocated by NewHistory. Entries are never mutated in place,
// and accessors return copies. History is not safe for concurrent use.
type History struct {
	slots   [][]byte
	lens    []int
	head    int // slot of the oldest entry
	count   int
	dedupe  bool
	browse  int // logical index, valid only if browsing
	browsed bool
}

// NewHistory allocates a History using cfg, see HistoryConfig for defaults.
func NewHistory(cfg HistoryConfig) *History {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10
	}
	if cfg.EntryCapacity <= 0 {
		cfg.EntryCapacity = DefaultBufferCapacity
	}
	arena := make([]byte, cfg.MaxEntries*cfg.EntryCapacity)
	slots := make([][]byte, cfg.MaxEntries)
	for i := range slots {
		slots[i] = arena[i*cfg.EntryCapacity : (i+1)*cfg.EntryCapacity : (i+1)*cfg.EntryCapacity]
	}
	return &History{
		slots:  slots,
		lens:   make([]int, cfg.MaxEntries),
		dedupe: cfg.Deduplicate,
	}
}

// Cap returns the maximum number of entries.
func (h *History) Cap() int { return len(h.slots) }

// EntryCap returns the maximum length of an entry, in bytes.
func (h *History) EntryCap() int { return cap(h.slots[0]) }

// Len returns the number of entries.
func (h *History) Len() int { return h.count }

// entry returns the stored bytes at logical index i (0 is the oldest).
func (h *History) entry(i int) []byte {
	slot := (h.head + i) % len(h.slots)
	return h.slots[slot][:h.lens[slot]]
}

// Record appends line as the newest entry, evicting the oldest entry if the
// history is full. Empty or all-whitespace lines, and (if deduplicating)
// lines equal to the newest entry, are ignored. A line longer than the entry
// capacity is dropped, returning ErrCapacityExceeded. The browse position is
// reset in all cases.
func (h *History) Record(line []byte) error {
	h.browsed = false
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}
	if h.dedupe && h.count != 0 && bytes.Equal(h.entry(h.count-1), line) {
		return nil
	}
	if len(line) > cap(h.slots[0]) {
		return ErrCapacityExceeded
	}
	var slot int
	if h.count == len(h.slots) {
		// evict the oldest, reusing its slot
		slot = h.head
		h.head = (h.head + 1) % len(h.slots)
	} else {
		slot = (h.head + h.count) % len(h.slots)
		h.count++
	}
	h.lens[slot] = copy(h.slots[slot][:cap(h.slots[slot])], line)
	return nil
}

// Previous steps the browse position one entry older, returning that entry.
// The first call after a reset returns the newest entry. Once at the oldest
// entry, it keeps returning the oldest entry. It returns false only if the
// history is empty.
func (h *History) Previous() ([]byte, bool) {
	if h.count == 0 {
		return nil, false
	}
	switch {
	case !h.browsed:
		h.browse = h.count - 1
		h.browsed = true
	case h.browse > 0:
		h.browse--
	}
	return bytes.Clone(h.entry(h.browse)), true
}

// Next steps the browse position one entry newer, returning that entry. It
// returns false if not browsing, or if the browse position was the newest
// entry, in which case browsing stops (the caller should clear its line).
func (h *History) Next() ([]byte, bool) {
	if !h.browsed {
		return nil, false
	}
	if h.browse >= h.count-1 {
		h.browsed = false
		return nil, false
	}
	h.browse++
	return bytes.Clone(h.entry(h.browse)), true
}

// Browsing reports the browse position, if any, as a logical index where 0
// is the oldest entry.
func (h *History) Browsing() (int, bool) {
	return h.browse, h.browsed
}

// ResetBrowse stops browsing, without changing any entries.
func (h *History) ResetBrowse() { h.browsed = false }

// Clear removes all entries.
func (h *History) Clear() {
	h.head = 0
	h.count = 0
	h.browsed = false
}

// All iterates over the entries, oldest to newest.
func (h *History) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < h.count; i++ {
			if !yield(string(h.entry(i))) {
				return
			}
		}
	}
}

// Backward iterates over the entries, newest to oldest.
func (h *History) Backward() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := h.count - 1; i >= 0; i-- {
			if !yield(string(h.entry(i))) {
				return
			}
		}
	}
}

// Entries returns a copy of all entries, oldest to newest.
func (h *History) Entries() []string {
	entries := make([]string, 0, h.count)
	for v := range h.All() {
		entries = append(entries, v)
	}
	return entries
}

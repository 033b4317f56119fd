package activity

import "sync/atomic"

type OpKind int

const (
	OpInsert OpKind = iota
	OpDelete
)

// Tracker accumulates keystroke and deletion counters from document
// mutations. Observe is only ever called from the UI event loop; the
// cumulative counters are atomics because the sampler goroutine reads
// them concurrently.
type Tracker struct {
	keystrokes atomic.Int64
	deletions  atomic.Int64
	lastCount  int
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a mutation. charCount is the document's visible
// character count after the edit; the delta against the previous
// observation is attributed wholly to kind. Mixed edits (typing over a
// selection) are classified by the dominant operation the input handler
// reports, an approximation rather than a per-character diff.
func (t *Tracker) Observe(charCount int, kind OpKind) {
	delta := charCount - t.lastCount
	t.lastCount = charCount
	if delta < 0 {
		delta = -delta
	}
	if delta == 0 {
		return
	}
	switch kind {
	case OpInsert:
		t.keystrokes.Add(int64(delta))
	case OpDelete:
		t.deletions.Add(int64(delta))
	}
}

func (t *Tracker) Keystrokes() int64 {
	return t.keystrokes.Load()
}

func (t *Tracker) Deletions() int64 {
	return t.deletions.Load()
}

// Reset zeroes both counters. Only the explicit document-clear action
// calls this.
func (t *Tracker) Reset() {
	t.keystrokes.Store(0)
	t.deletions.Store(0)
	t.lastCount = 0
}

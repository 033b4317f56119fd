package activity

import (
	"sync"
	"time"
)

// DefaultInterval matches the original 100 ms sampling period.
const DefaultInterval = 100 * time.Millisecond

// Sampler snapshots the tracker's cumulative counters at a fixed period
// into two parallel series. Both series grow in lock step: one value is
// appended to each per tick, unconditionally, even when nothing changed.
// The sampler never touches the document itself.
type Sampler struct {
	tracker  *Tracker
	interval time.Duration

	mu         sync.Mutex
	keystrokes []int64
	deletions  []int64

	stop     chan struct{}
	stopOnce sync.Once
}

func NewSampler(tracker *Tracker, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		tracker:  tracker,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sampling loop. The sampler runs for the lifetime
// of the editor instance; once stopped it is not restartable.
func (s *Sampler) Start() {
	go s.run()
}

func (s *Sampler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sample()
		}
	}
}

// Sample appends the current cumulative counters to both series.
func (s *Sampler) Sample() {
	keys := s.tracker.Keystrokes()
	dels := s.tracker.Deletions()
	s.mu.Lock()
	s.keystrokes = append(s.keystrokes, keys)
	s.deletions = append(s.deletions, dels)
	s.mu.Unlock()
}

// Series returns copies of the keystroke and deletion series.
func (s *Sampler) Series() (keystrokes, deletions []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keystrokes = make([]int64, len(s.keystrokes))
	copy(keystrokes, s.keystrokes)
	deletions = make([]int64, len(s.deletions))
	copy(deletions, s.deletions)
	return keystrokes, deletions
}

// Reset empties both series. Part of the atomic document-clear action.
func (s *Sampler) Reset() {
	s.mu.Lock()
	s.keystrokes = s.keystrokes[:0]
	s.deletions = s.deletions[:0]
	s.mu.Unlock()
}

func (s *Sampler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

package samples

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidCapacity is returned by New for a capacity below one.
var ErrInvalidCapacity = errors.New("samples: capacity must be positive")

// Store is a fixed-capacity circular buffer of samples with a single
// writer and any number of lock-free readers.
//
// Every write is addressed by an absolute offset. The cursor holds the most
// recently assigned offset (-1 before the first write) and offset k lives in
// slot FloorMod(k, capacity). The cursor bump and the slot write are two
// separate atomic steps, so a reader may briefly see a stale slot for the
// newest offset. Renders are best-effort snapshots.
type Store struct {
	slots  []atomic.Pointer[Sample]
	cursor atomic.Int64
}

// New creates a store holding up to capacity samples.
func New(capacity int) (*Store, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	s := &Store{slots: make([]atomic.Pointer[Sample], capacity)}
	s.cursor.Store(-1)
	return s, nil
}

// FloorMod returns a mod n in [0, n) for n > 0, including negative a.
func FloorMod(a, n int64) int64 {
	return ((a % n) + n) % n
}

// Capacity returns the number of slots.
func (s *Store) Capacity() int {
	return len(s.slots)
}

// Cursor returns the most recently assigned offset, or -1 if nothing has
// been written since creation or the last ClearAll.
func (s *Store) Cursor() int64 {
	return s.cursor.Load()
}

// Slot maps an absolute offset to its slot index.
func (s *Store) Slot(offset int64) int {
	return int(FloorMod(offset, int64(len(s.slots))))
}

// Append stores sample at the next offset and returns that offset. Once the
// store is full the oldest sample is overwritten.
func (s *Store) Append(sample Sample) int64 {
	offset := s.cursor.Add(1)
	s.slots[s.Slot(offset)].Store(&sample)
	return offset
}

// AppendAt stores sample at a previously assigned offset without moving the
// cursor. Whatever occupies the slot is replaced.
func (s *Store) AppendAt(offset int64, sample Sample) {
	s.slots[s.Slot(offset)].Store(&sample)
}

// ClearAt empties the slot for offset and rewinds the cursor to it, so the
// next Append reuses offset+1. The cursor may move backward.
func (s *Store) ClearAt(offset int64) {
	s.slots[s.Slot(offset)].Store(nil)
	s.cursor.Store(offset)
}

// ClearNext reserves the next offset for a probe that has not completed yet.
// The slot is emptied and the new offset returned.
func (s *Store) ClearNext() int64 {
	offset := s.cursor.Add(1)
	s.slots[s.Slot(offset)].Store(nil)
	return offset
}

// ClearAll empties every slot and resets the cursor to -1.
//
// It is not synchronized with a concurrent writer. A probe completing during
// ClearAll may leave a sample behind or advance the cursor again; callers
// that need a clean reset must stop the writer first.
func (s *Store) ClearAll() {
	for i := range s.slots {
		s.slots[i].Store(nil)
	}
	s.cursor.Store(-1)
}

// Count returns the number of non-empty slots. It scans the whole buffer.
func (s *Store) Count() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].Load() != nil {
			n++
		}
	}
	return n
}

// At returns the sample in slot index (normalized into range) and whether
// the slot holds one.
func (s *Store) At(index int) (Sample, bool) {
	p := s.slots[s.Slot(int64(index))].Load()
	if p == nil {
		return Sample{}, false
	}
	return *p, true
}

// Get returns the sample written at an absolute offset. Offsets past the
// cursor, and offsets old enough to have been overwritten, report false even
// if a stale value remains in the slot.
func (s *Store) Get(offset int64) (Sample, bool) {
	cur := s.cursor.Load()
	if offset < 0 || offset > cur || cur-offset >= int64(len(s.slots)) {
		return Sample{}, false
	}
	return s.At(s.Slot(offset))
}

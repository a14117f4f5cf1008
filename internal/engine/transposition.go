// Package engine holds the shared transposition table and the search that
// exercises it.
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/dkoval/ivorine/internal/board"
)

// Bound classifies a cached score: exact, or one-sided from an alpha-beta
// cutoff.
type Bound uint8

const (
	BoundLower Bound = iota
	BoundExact
	BoundUpper
)

const (
	// hashEntrySize is the fixed slot size; Configure derives the entry
	// count from it.
	hashEntrySize = 16

	// dateMask keeps the generation counter in 6 bits.
	dateMask = 0x3F

	// Slot index space is split across this many locks; power of two for
	// cheap masking.
	shardCount = 256
)

// HashEntry is one table slot: the full fingerprint for collision
// detection plus the cached search result. The layout is fixed at 16
// bytes; the bound and generation share one byte.
type HashEntry struct {
	Key   uint64
	Move  board.Move
	Score int16
	Eval  int16
	Depth int8
	flags uint8 // bound in bits 0-1, date in bits 2-7
}

// Bound returns the bound type of the cached score.
func (e *HashEntry) Bound() Bound {
	return Bound(e.flags & 3)
}

// SetBound records the bound type.
func (e *HashEntry) SetBound(b Bound) {
	e.flags = e.flags&^3 | uint8(b)
}

// Date returns the generation the entry was stored in.
func (e *HashEntry) Date() uint8 {
	return e.flags >> 2
}

func (e *HashEntry) setDate(d uint8) {
	e.flags = e.flags&3 | d<<2
}

// Table is the transposition table shared by all search workers. Slots are
// indexed by the low bits of the fingerprint; a probe is a hit only when
// the full key matches, so an entry clobbered by a racing writer reads as
// a miss, never as corruption. Locking is sharded to keep writers on
// different cache lines out of each other's way.
type Table struct {
	mu      [shardCount]sync.Mutex
	entries []HashEntry
	mask    uint64
	sizeMB  int
	date    atomic.Uint32
}

// NewTable allocates a table sized to the given byte budget in megabytes.
func NewTable(sizeMB int) *Table {
	t := &Table{}
	t.Configure(sizeMB)
	return t
}

// Configure reallocates the backing array to the largest power-of-two
// entry count that fits sizeMB and clears every slot. Previously stored
// results become unreachable. Budgets below one megabyte are clamped so
// the table is never empty. Not meant to race with Probe or Store.
func (t *Table) Configure(sizeMB int) {
	if sizeMB < 1 {
		sizeMB = 1
	}
	count := powerOfTwoBelow(uint64(sizeMB) << 20 / hashEntrySize)
	t.entries = make([]HashEntry, count)
	t.mask = count - 1
	t.sizeMB = sizeMB
	t.date.Store(0)
}

func powerOfTwoBelow(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Count returns the number of slots.
func (t *Table) Count() uint64 {
	return uint64(len(t.entries))
}

// SizeMB returns the configured byte budget.
func (t *Table) SizeMB() int {
	return t.sizeMB
}

// NewSearch advances the 6-bit generation counter. Called once per search,
// not per node; the replacement policy uses it to age out entries from
// earlier searches.
func (t *Table) NewSearch() {
	t.date.Store((t.date.Load() + 1) & dateMask)
}

func (t *Table) currentDate() uint8 {
	return uint8(t.date.Load())
}

func (t *Table) shard(idx uint64) *sync.Mutex {
	return &t.mu[idx&(shardCount-1)]
}

// Probe looks up key. On a hit the returned entry's score has been rebased
// from the stored root-relative mate distance to the caller's ply.
func (t *Table) Probe(key uint64, ply int) (HashEntry, bool) {
	idx := key & t.mask
	mu := t.shard(idx)
	mu.Lock()
	e := t.entries[idx]
	mu.Unlock()

	if e.Key != key {
		return HashEntry{}, false
	}
	e.Score = int16(ScoreFromHash(int(e.Score), ply))
	return e, true
}

// Store writes e under key. The slot is overwritten when it is empty, when
// it belongs to a different generation, or when the incoming entry's depth
// is at least the resident one's.
func (t *Table) Store(key uint64, e HashEntry, ply int) {
	e.Key = key
	e.Score = int16(ScoreToHash(int(e.Score), ply))
	e.setDate(t.currentDate())

	idx := key & t.mask
	mu := t.shard(idx)
	mu.Lock()
	slot := &t.entries[idx]
	if slot.Key == 0 || slot.Date() != e.Date() || e.Depth >= slot.Depth {
		// The key word is written atomically so the lock-free readers
		// (Prefetch, Permille) never race with a store.
		slot.Move, slot.Score, slot.Eval, slot.Depth, slot.flags =
			e.Move, e.Score, e.Eval, e.Depth, e.flags
		atomic.StoreUint64(&slot.Key, e.Key)
	}
	mu.Unlock()
}

// Prefetch touches the slot for key so its cache line is warm before the
// probe or store the caller is about to issue. Purely a latency hint.
func (t *Table) Prefetch(key uint64) {
	_ = atomic.LoadUint64(&t.entries[key&t.mask].Key)
}

// Permille samples up to a thousand slots and reports the occupied
// fraction in parts per thousand, for "hashfull" style reporting.
func (t *Table) Permille() int {
	sample := 1000
	if n := len(t.entries); n < sample {
		sample = n
	}
	used := 0
	for i := 0; i < sample; i++ {
		if atomic.LoadUint64(&t.entries[i].Key) != 0 {
			used++
		}
	}
	return used * 1000 / sample
}

// ScoreToHash rebases a mate-distance score from the caller's ply to the
// root-relative form stored in the table.
func ScoreToHash(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

// ScoreFromHash is the inverse of ScoreToHash; applying both with the same
// ply round-trips, and differing plies shift the mate distance to the new
// point of view.
func ScoreFromHash(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

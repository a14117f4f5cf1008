package engine

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/dkoval/ivorine/internal/board"
)

func TestTableConfigure(t *testing.T) {
	is := is.New(t)

	tt := NewTable(1)
	is.Equal(tt.Count(), uint64(1<<20/hashEntrySize)) // 1 MB of 16-byte slots
	is.Equal(tt.SizeMB(), 1)

	// A budget that is not a power-of-two multiple rounds down.
	tt.Configure(3)
	is.Equal(tt.Count(), uint64(2<<20/hashEntrySize))
	is.Equal(tt.SizeMB(), 3)

	// A zero or negative budget clamps to one megabyte instead of
	// producing an empty table.
	tt.Configure(0)
	is.Equal(tt.Count(), uint64(1<<20/hashEntrySize))
	is.Equal(tt.SizeMB(), 1)
	tt.Store(0x99, HashEntry{Depth: 1}, 0)
	_, ok := tt.Probe(0x99, 0)
	is.True(ok)
	is.True(tt.Permille() >= 0)

	tt.Configure(-5)
	is.Equal(tt.SizeMB(), 1)
}

func TestTableConfigureClears(t *testing.T) {
	is := is.New(t)

	tt := NewTable(1)
	tt.Store(0xABCD, HashEntry{Depth: 5}, 0)
	_, ok := tt.Probe(0xABCD, 0)
	is.True(ok)

	tt.Configure(1)
	_, ok = tt.Probe(0xABCD, 0)
	is.True(!ok) // reconfiguring discards every entry
}

func TestTableStoreProbe(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)

	e := HashEntry{
		Move:  board.NewMove(board.E2, board.E4),
		Score: 37,
		Eval:  21,
		Depth: 9,
	}
	e.SetBound(BoundExact)
	tt.Store(0x123456789A, e, 4)

	got, ok := tt.Probe(0x123456789A, 4)
	is.True(ok)
	is.Equal(got.Move, e.Move)
	is.Equal(got.Score, int16(37)) // non-mate scores are ply-independent
	is.Equal(got.Eval, int16(21))
	is.Equal(got.Depth, int8(9))
	is.Equal(got.Bound(), BoundExact)

	_, ok = tt.Probe(0x123456789B, 4)
	is.True(!ok) // unknown key
}

func TestTableMateRebasing(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)

	// A mate found 5 plies below a node at ply 2 is stored root-relative
	// and re-expressed for whichever ply probes it.
	e := HashEntry{Score: int16(MateScore - 5), Depth: 7}
	e.SetBound(BoundExact)
	tt.Store(0xFEED, e, 2)

	got, ok := tt.Probe(0xFEED, 2)
	is.True(ok)
	is.Equal(int(got.Score), MateScore-5) // same ply round-trips

	got, ok = tt.Probe(0xFEED, 4)
	is.True(ok)
	is.Equal(int(got.Score), MateScore-7) // two plies deeper, mate two further

	// Mated scores shift the other way.
	e = HashEntry{Score: int16(-MateScore + 3), Depth: 7}
	e.SetBound(BoundExact)
	tt.Store(0xBEEF, e, 1)
	got, ok = tt.Probe(0xBEEF, 3)
	is.True(ok)
	is.Equal(int(got.Score), -MateScore+5)
}

func TestTableReplacement(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)

	// Two keys hashing to the same slot.
	k1 := uint64(0x42)
	k2 := k1 + tt.Count()

	deep := HashEntry{Depth: 9}
	tt.Store(k1, deep, 0)

	// A shallower entry from the same generation loses the fight.
	tt.Store(k2, HashEntry{Depth: 3}, 0)
	_, ok := tt.Probe(k1, 0)
	is.True(ok)
	_, ok = tt.Probe(k2, 0)
	is.True(!ok)

	// An equal-depth entry wins: newer analysis of equal depth is worth
	// more.
	tt.Store(k2, HashEntry{Depth: 9}, 0)
	_, ok = tt.Probe(k2, 0)
	is.True(ok)
	_, ok = tt.Probe(k1, 0)
	is.True(!ok)

	// After a generation bump even a shallow entry displaces a stale one.
	tt.Store(k1, HashEntry{Depth: 9}, 0)
	tt.NewSearch()
	tt.Store(k2, HashEntry{Depth: 1}, 0)
	_, ok = tt.Probe(k2, 0)
	is.True(ok)
	_, ok = tt.Probe(k1, 0)
	is.True(!ok)
}

func TestTablePermille(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)
	is.Equal(tt.Permille(), 0)

	for i := uint64(1); i <= 500; i++ {
		tt.Store(i, HashEntry{Depth: 1}, 0)
	}
	p := tt.Permille()
	is.True(p >= 450 && p <= 550) // 500 of the first 1000 slots
}

func TestTablePrefetch(t *testing.T) {
	tt := NewTable(1)
	// A latency hint only; it must be safe on any key.
	tt.Prefetch(0)
	tt.Prefetch(^uint64(0))
}

func TestScoreHashRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, score := range []int{0, 123, -123, MateScore - 1, -MateScore + 4} {
		for _, ply := range []int{0, 1, 17} {
			is.Equal(ScoreFromHash(ScoreToHash(score, ply), ply), score)
		}
	}
}

func TestTableConcurrentAccess(t *testing.T) {
	tt := NewTable(1)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 10000; i++ {
				key := uint64(rng.Intn(4096)) + 1
				if i%3 == 0 {
					e := HashEntry{Depth: int8(rng.Intn(20)), Score: int16(rng.Intn(100))}
					tt.Store(key, e, rng.Intn(8))
				} else {
					tt.Prefetch(key)
					if e, ok := tt.Probe(key, 0); ok && e.Key != key {
						t.Error("probe hit with mismatched key")
					}
					if i%100 == 0 {
						if p := tt.Permille(); p < 0 || p > 1000 {
							t.Errorf("Permille() = %d out of range", p)
						}
					}
				}
			}
		}(int64(w))
	}
	wg.Wait()
}

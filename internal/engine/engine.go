package engine

import (
	"time"

	"github.com/dkoval/ivorine/internal/board"
)

// SearchInfo is the per-iteration progress report handed to OnInfo.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	HashFull int
	PV       []board.Move
}

// Limits constrains a search; zero values mean unconstrained.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
}

// Engine owns the transposition table and searcher. The table is built
// once here and shared by reference; there are no package-level tables.
type Engine struct {
	tt       *Table
	searcher *Searcher

	// OnInfo, when set, is called after every completed depth.
	OnInfo func(SearchInfo)
}

// New builds an engine with a hash table of the given size in megabytes.
func New(hashMB int) *Engine {
	tt := NewTable(hashMB)
	return &Engine{tt: tt, searcher: NewSearcher(tt)}
}

// Table exposes the shared transposition table for reconfiguration and
// occupancy reporting.
func (e *Engine) Table() *Table {
	return e.tt
}

// Nodes returns the node count of the current or last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// NewGame discards cached analysis by reallocating the table at its
// current size.
func (e *Engine) NewGame() {
	e.tt.Configure(e.tt.SizeMB())
}

// Stop interrupts a running search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Search runs iterative deepening from pos within limits and returns the
// best move found, NoMove when pos has no legal moves.
func (e *Engine) Search(pos *board.Position, limits Limits) board.Move {
	e.tt.NewSearch()

	maxDepth := MaxPly
	if limits.Depth > 0 && limits.Depth < MaxPly {
		maxDepth = limits.Depth
	}
	var deadline time.Time
	start := time.Now()
	if limits.MoveTime > 0 && !limits.Infinite {
		deadline = start.Add(limits.MoveTime)
	}
	e.searcher.reset(deadline)

	best := board.NoMove
	for depth := 1; depth <= maxDepth; depth++ {
		move, score := e.searcher.searchRoot(pos, depth)
		if e.searcher.stop.Load() && depth > 1 {
			break
		}
		if move != board.NoMove {
			best = move
		}

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.searcher.Nodes(),
				Time:     time.Since(start),
				HashFull: e.tt.Permille(),
				PV:       e.searcher.principalVariation(*pos, depth),
			})
		}

		// A forced mate does not get better with depth.
		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			break
		}
	}
	return best
}

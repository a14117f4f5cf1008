package uci

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dkoval/ivorine/internal/board"
	"github.com/dkoval/ivorine/internal/engine"
)

// Info holds the best search result found so far. One producer (the
// search) calls Update; a reporter may call Print concurrently and always
// observes a complete snapshot of a single update, never a torn one.
type Info struct {
	mu      sync.Mutex
	depth   int
	score   int
	nodes   uint64
	pv      []board.Move
	updated bool
}

// Clear resets the aggregator to the idle state; Print becomes a no-op
// until the next Update.
func (i *Info) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.depth = 0
	i.score = 0
	i.nodes = 0
	i.pv = i.pv[:0]
	i.updated = false
}

// Update replaces the held result. The principal variation is copied so
// the caller may keep mutating its slice.
func (i *Info) Update(depth, score int, nodes uint64, pv []board.Move) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.depth = depth
	i.score = score
	i.nodes = nodes
	i.pv = append(i.pv[:0], pv...)
	i.updated = true
}

// BestMove returns the first move of the held variation, NoMove when idle.
func (i *Info) BestMove() board.Move {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.updated || len(i.pv) == 0 {
		return board.NoMove
	}
	return i.pv[0]
}

// Print writes one "info ..." line for the held result, if any.
func (i *Info) Print(w io.Writer) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.updated {
		return
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("depth %d", i.depth))
	parts = append(parts, "score "+formatScore(i.score))
	parts = append(parts, fmt.Sprintf("nodes %d", i.nodes))
	if len(i.pv) > 0 {
		moves := make([]string, len(i.pv))
		for k, m := range i.pv {
			moves[k] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(moves, " "))
	}
	fmt.Fprintf(w, "info %s\n", strings.Join(parts, " "))
}

func formatScore(score int) string {
	if score > engine.MateScore-engine.MaxPly {
		return fmt.Sprintf("mate %d", (engine.MateScore-score+1)/2)
	}
	if score < -engine.MateScore+engine.MaxPly {
		return fmt.Sprintf("mate %d", -(engine.MateScore+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// Package uci implements the text protocol front end: the command loop
// and the thread-safe search progress aggregator.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dkoval/ivorine/internal/board"
	"github.com/dkoval/ivorine/internal/engine"
	"github.com/dkoval/ivorine/internal/storage"
)

// UCI drives the engine over the line protocol.
type UCI struct {
	engine *engine.Engine
	store  *storage.Store // optional, nil disables persistence
	out    io.Writer

	pos  board.Position
	info Info

	searching  bool
	searchDone chan struct{}

	searches uint64
	nodes    uint64
}

// New wires the protocol handler to an engine; store may be nil.
func New(eng *engine.Engine, store *storage.Store) *UCI {
	return &UCI{
		engine: eng,
		store:  store,
		out:    os.Stdout,
		pos:    board.NewPositionFromFEN(board.StartFEN),
	}
}

// Run reads commands from r until "quit" or EOF. Search runs on its own
// goroutine; the loop stays responsive to "stop".
func (u *UCI) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			fmt.Fprintln(u.out, "id name Ivorine")
			fmt.Fprintln(u.out, "id author Ivorine contributors")
			fmt.Fprintln(u.out)
			fmt.Fprintln(u.out, "option name Hash type spin default 64 min 1 max 4096")
			fmt.Fprintln(u.out, "uciok")
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.waitSearch()
			u.engine.NewGame()
			u.pos = board.NewPositionFromFEN(board.StartFEN)
		case "position":
			u.waitSearch()
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.engine.Stop()
			u.waitSearch()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Fprint(u.out, u.pos.String())
		case "quit":
			u.engine.Stop()
			u.waitSearch()
			u.saveTotals()
			return
		}
	}
	u.engine.Stop()
	u.waitSearch()
	u.saveTotals()
}

func (u *UCI) waitSearch() {
	if u.searching {
		<-u.searchDone
		u.searching = false
	}
}

// handlePosition parses "startpos|fen <fen>" plus an optional move list.
// Field counts are the only validation done here; the board parser trusts
// its input.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	rest := args
	switch args[0] {
	case "startpos":
		u.pos = board.NewPositionFromFEN(board.StartFEN)
		rest = args[1:]
	case "fen":
		end := len(args)
		for i, a := range args {
			if a == "moves" {
				end = i
				break
			}
		}
		if end < 5 {
			fmt.Fprintf(os.Stderr, "info string incomplete fen\n")
			return
		}
		u.pos = board.NewPositionFromFEN(strings.Join(args[1:end], " "))
		rest = args[end:]
	default:
		return
	}

	if len(rest) == 0 || rest[0] != "moves" {
		return
	}
	for _, ms := range rest[1:] {
		m, err := board.MoveFromUCI(&u.pos, ms)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string bad move %s: %v\n", ms, err)
			return
		}
		u.pos = u.pos.Play(m)
	}
}

func (u *UCI) handleGo(args []string) {
	u.waitSearch()

	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				limits.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			limits.Infinite = true
		}
	}
	if limits.Depth == 0 && limits.MoveTime == 0 && !limits.Infinite {
		limits.MoveTime = 2 * time.Second
	}

	root := u.pos
	u.info.Clear()
	u.engine.OnInfo = func(si engine.SearchInfo) {
		u.info.Update(si.Depth, si.Score, si.Nodes, wirePV(root, si.PV))
		u.info.Print(u.out)
	}

	u.searching = true
	u.searchDone = make(chan struct{})
	u.searches++

	go func() {
		defer close(u.searchDone)
		best := u.engine.Search(&root, limits)
		u.nodes += u.engine.Nodes()
		if best == board.NoMove {
			fmt.Fprintln(u.out, "bestmove 0000")
			return
		}
		fmt.Fprintf(u.out, "bestmove %s\n", board.MoveToUCI(&root, best))
	}()
}

// wirePV rewrites a principal variation from the internal castling
// encoding to the conventional wire form; the translation needs the
// position each move is played from.
func wirePV(pos board.Position, pv []board.Move) []board.Move {
	wire := make([]board.Move, len(pv))
	for i, m := range pv {
		wire[i] = board.MoveToWire(&pos, m)
		pos = pos.Play(m)
	}
	return wire
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	target := &name
	for _, a := range args {
		switch a {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if *target != "" {
				*target += " "
			}
			*target += a
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			return
		}
		u.waitSearch()
		u.engine.Table().Configure(mb)
		if u.store != nil {
			if err := u.store.SaveOptions(storage.EngineOptions{HashMB: mb}); err != nil {
				fmt.Fprintf(os.Stderr, "info string options not saved: %v\n", err)
			}
		}
	}
}

func (u *UCI) saveTotals() {
	if u.store == nil || u.searches == 0 {
		return
	}
	if err := u.store.AddTotals(u.searches, u.nodes); err != nil {
		fmt.Fprintf(os.Stderr, "info string totals not saved: %v\n", err)
	}
}

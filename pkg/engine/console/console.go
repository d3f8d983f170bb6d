// Package console contains a plain-text driver for debugging an Engine
// interactively, independent of the UCI wire protocol.
package console

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/polychess/vace/pkg/engine"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	e *engine.Engine

	out chan<- string

	active atomic.Bool // user is waiting for engine to move
	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:    e,
		out:  out,
		quit: make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "new", "n":
				d.ensureInactive(ctx)
				if err := d.e.StartNewGame(ctx); err != nil {
					logw.Errorf(ctx, "New game failed: %v", err)
					return
				}
				d.printBoard(ctx)

			case "reset", "r":
				// reset <fenstring> moves ...

				d.ensureInactive(ctx)

				if len(args) < 4 {
					d.out <- "usage: reset <fen> [moves ...]"
					break
				}
				pos := strings.Join(args[0:4], " ")
				rest := args[4:]
				if len(rest) >= 2 {
					pos = strings.Join(args[0:6], " ")
					rest = args[6:]
				}
				if err := d.e.SetupFENPosition(ctx, pos); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}
				move := false
				for _, arg := range rest {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.playMoveText(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_, _ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "redo":
				d.ensureInactive(ctx)

				_ = d.e.ReplayMove(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "go", "think", "t":
				d.ensureInactive(ctx)

				depth := 4
				if len(args) > 0 {
					if n, err := strconv.Atoi(args[0]); err == nil {
						depth = n
					}
				}

				state, err := d.e.Think(ctx, depth)
				if err != nil {
					logw.Errorf(ctx, "Think failed: %v", err)
					return
				}
				d.out <- fmt.Sprintf("state: %v", state)
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt search.Options
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					opt.DepthLimit = depth
				}

				out, err := d.e.Analyse(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyse failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- pv.String()
					}
					d.searchCompleted(ctx, last)
				}()

			case "hash": // size in bytes
				if len(args) > 0 {
					if n, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetTranspositionTableSize(ctx, uint64(n))
					}
				}

			case "nohash":
				d.e.SetTranspositionTableSize(ctx, 0)

			case "eval":
				d.out <- fmt.Sprintf("eval: %v", d.e.Eval(ctx))

			case "fen":
				d.out <- d.e.MakeFENString()

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.playMoveText(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) playMoveText(ctx context.Context, text string) error {
	m, err := d.e.MoveStringToMove(text)
	if err != nil {
		return err
	}
	return d.e.PlayMove(ctx, m)
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if !d.active.CAS(true, false) {
		return // stale or duplicate result
	}
	if len(pv.Moves) == 0 {
		d.out <- "bestmove none"
		return
	}
	d.out <- fmt.Sprintf("bestmove %v", d.e.FormatMove(pv.Moves[0]))

	// Break down the root's legal moves by static eval + SEE, cheap and
	// TT/noise-free, rather than a second full sub-search per candidate.

	var ranked []candidate
	for _, m := range d.e.GenerateLegalMoves() {
		ranked = append(ranked, candidate{m: m, see: d.e.See(m)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].see > ranked[j].see })

	d.out <- fmt.Sprintf("candidates at depth=%v:", pv.Depth)
	for i, c := range ranked {
		if i >= 10 {
			break
		}
		d.out <- fmt.Sprintf(" %2d. %v\tsee=%v", i+1, d.e.FormatMove(c.m), c.see)
	}
}

type candidate struct {
	m   move.Move
	see eval.Score
}

func (d *Driver) printBoard(ctx context.Context) {
	d.out <- ""
	d.out <- d.e.RenderBoard()
	d.out <- fmt.Sprintf("fen:    %v", d.e.MakeFENString())
	d.out <- fmt.Sprintf("result: %v", d.e.GetGameEndState())
	d.out <- ""
}

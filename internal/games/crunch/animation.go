package crunch

import (
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/session"
)

// Mark is how a cell is highlighted while a transition plays.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkSwap
	MarkInvalid
	MarkMatch
	MarkFall
	MarkSpawn
)

// view is the grid as the player currently sees it.
type view struct {
	columns int
	rows    int
	types   []engine.CookieType
	marks   []Mark
}

func newView(columns, rows int) view {
	return view{
		columns: columns,
		rows:    rows,
		types:   make([]engine.CookieType, columns*rows),
		marks:   make([]Mark, columns*rows),
	}
}

func (v *view) index(c engine.Coord) int {
	return c.Row*v.columns + c.Column
}

func (v *view) at(column, row int) (engine.CookieType, Mark) {
	if column < 0 || column >= v.columns || row < 0 || row >= v.rows {
		return engine.NoCookie, MarkNone
	}
	i := row*v.columns + column
	return v.types[i], v.marks[i]
}

func (v *view) set(c engine.Cookie, m Mark) {
	i := v.index(c.Coord())
	v.types[i] = c.Type
	v.marks[i] = m
}

func (v *view) mark(c engine.Coord, m Mark) {
	v.marks[v.index(c)] = m
}

func (v *view) clearMarks() {
	for i := range v.marks {
		v.marks[i] = MarkNone
	}
}

// transition is a session event being replayed.
type transition struct {
	event session.Event
	ticks int // elapsed
	total int
}

// Progress returns how far the transition has played, 0.0 → 1.0.
func (t *transition) Progress() float64 {
	if t.total == 0 {
		return 1
	}
	p := float64(t.ticks) / float64(t.total)
	if p > 1 {
		p = 1
	}
	return p
}

func (g *Game) enqueue(events []session.Event) {
	g.queue = append(g.queue, events...)
}

// animating reports whether events are still waiting to be shown.
func (g *Game) animating() bool {
	return g.current != nil || len(g.queue) > 0
}

// duration returns the ticks spent on an event kind.
func (g *Game) duration(kind session.EventKind) int {
	a := g.cfg.Animation
	switch kind {
	case session.EventSwap:
		return a.SwapTicks
	case session.EventInvalidSwap:
		return 2 * a.SwapTicks
	case session.EventMatch:
		return a.MatchTicks
	case session.EventFall:
		return a.FallTicks
	case session.EventSpawn:
		return a.SpawnTicks
	case session.EventBegin, session.EventShuffle, session.EventNoMoves:
		return a.ShuffleTicks
	default:
		return 0
	}
}

// updateAnimation advances the replay by one tick. Events with no
// duration are applied immediately.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	for g.animating() {
		if g.current == nil {
			g.startTransition(g.queue[0])
			g.queue = g.queue[1:]
		}
		if g.current.ticks < g.current.total {
			g.current.ticks++
			return true
		}
		g.finishTransition()
	}
	return false
}

// startTransition applies what the event changes on screen.
func (g *Game) startTransition(ev session.Event) {
	g.current = &transition{event: ev, total: g.duration(ev.Kind)}
	g.view.clearMarks()

	switch ev.Kind {
	case session.EventBegin, session.EventShuffle:
		for i := range g.view.types {
			g.view.types[i] = engine.NoCookie
		}
		for _, c := range ev.Cookies {
			g.view.set(c, MarkNone)
		}
		if ev.Kind == session.EventShuffle {
			g.say("Shuffled")
		}
	case session.EventSwap:
		a, b := ev.Swap.A, ev.Swap.B
		ia, ib := g.view.index(a), g.view.index(b)
		g.view.types[ia], g.view.types[ib] = g.view.types[ib], g.view.types[ia]
		g.view.mark(a, MarkSwap)
		g.view.mark(b, MarkSwap)
	case session.EventInvalidSwap:
		g.view.mark(ev.Swap.A, MarkInvalid)
		g.view.mark(ev.Swap.B, MarkInvalid)
		g.say("No chain there")
	case session.EventMatch:
		for _, ch := range ev.Chains {
			for _, c := range ch.Cookies {
				g.view.mark(c.Coord(), MarkMatch)
			}
		}
		if ev.Combo > g.bestCombo {
			g.bestCombo = ev.Combo
		}
	case session.EventFall:
		for _, column := range ev.Falls {
			for _, f := range column {
				g.view.set(engine.Cookie{Column: f.Cookie.Column, Row: f.FromRow}, MarkNone)
				g.view.set(f.Cookie, MarkFall)
			}
		}
	case session.EventSpawn:
		for _, column := range ev.Spawns {
			for _, c := range column {
				g.view.set(c, MarkSpawn)
			}
		}
	case session.EventNoMoves:
		g.say("No possible swaps, reshuffling")
	}
}

// finishTransition completes the current event.
func (g *Game) finishTransition() {
	ev := g.current.event
	if ev.Kind == session.EventMatch {
		for _, ch := range ev.Chains {
			for _, c := range ch.Cookies {
				g.view.set(engine.Cookie{Column: c.Column, Row: c.Row}, MarkNone)
			}
		}
	}
	g.view.clearMarks()
	g.shown = ev.State
	g.current = nil
}

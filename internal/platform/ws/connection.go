package ws

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/levels"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/session"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

// Command types sent by clients.
const (
	CommandSwap    = "swap"
	CommandShuffle = "shuffle"
	CommandHint    = "hint"
)

// Message kinds the server adds to the session event kinds.
const (
	KindReady   = "ready"
	KindSettled = "settled"
	KindHint    = "hint"
	KindError   = "error"
)

// Command is a client request. From and To are [column, row] pairs.
type Command struct {
	Type string `json:"type"`
	From [2]int `json:"from"`
	To   [2]int `json:"to"`
}

// Swap returns the swap the command names.
func (c Command) Swap() engine.Swap {
	return engine.NewSwap(engine.C(c.From[0], c.From[1]), engine.C(c.To[0], c.To[1]))
}

// Ready is the first message of every connection.
type Ready struct {
	Kind    string   `json:"kind"`
	RunID   string   `json:"run_id"`
	Level   string   `json:"level"`
	Title   string   `json:"title"`
	Seed    int64    `json:"seed"`
	Columns int      `json:"columns"`
	Rows    int      `json:"rows"`
	Tiles   []string `json:"tiles"` // one string per row, '#' playable and '.' not
}

// Settled follows the events of one command once the board is stable.
type Settled struct {
	Kind  string        `json:"kind"`
	State session.State `json:"state"`
}

// Hint answers a hint command. Swap is nil when no swap exists.
type Hint struct {
	Kind string       `json:"kind"`
	Swap *engine.Swap `json:"swap,omitempty"`
}

// Error reports a rejected command. The game is unchanged.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// connection plays one session for one websocket client. Reads and writes
// happen on the serving goroutine only.
type connection struct {
	conn  *websocket.Conn
	sess  *session.Session
	level levels.Level
	seed  int64
	runID string

	store       *storage.Store
	logger      *log.Logger
	readTimeout time.Duration
	saved       bool
}

func newConnection(conn *websocket.Conn, board *engine.Board, lvl levels.Level, seed int64, runID string) *connection {
	return &connection{
		conn:  conn,
		sess:  session.New(board),
		level: lvl,
		seed:  seed,
		runID: runID,
	}
}

func (c *connection) serve() {
	defer c.conn.Close()
	defer c.save()

	c.logger.Info("session started", "remote", c.conn.RemoteAddr().String(), "seed", c.seed)

	ev, err := c.sess.Begin()
	if err != nil {
		c.logger.Error("cannot begin", "err", err)
		//nolint:errcheck // closing anyway
		c.conn.WriteJSON(Error{Kind: KindError, Message: err.Error()})
		return
	}
	if err := c.conn.WriteJSON(c.ready()); err != nil {
		return
	}
	if err := c.send([]session.Event{ev}); err != nil {
		return
	}

	for {
		if c.readTimeout > 0 {
			//nolint:errcheck // a failed deadline shows up as a read error
			c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		}
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("read failed", "err", err)
			}
			c.logger.Info("session ended", "score", c.sess.State().Score)
			return
		}
		if err := c.handle(cmd); err != nil {
			c.logger.Debug("write failed", "err", err)
			return
		}
	}
}

func (c *connection) handle(cmd Command) error {
	switch cmd.Type {
	case CommandHint:
		sw, ok := c.sess.Hint()
		if !ok {
			return c.conn.WriteJSON(Hint{Kind: KindHint})
		}
		return c.conn.WriteJSON(Hint{Kind: KindHint, Swap: &sw})
	case CommandSwap:
		events, err := c.sess.Play(cmd.Swap())
		return c.reply(events, err)
	case CommandShuffle:
		events, err := c.sess.Reshuffle()
		return c.reply(events, err)
	default:
		return c.conn.WriteJSON(Error{Kind: KindError, Message: fmt.Sprintf("unknown command %q", cmd.Type)})
	}
}

// reply sends the events of a command, or the error that rejected it.
func (c *connection) reply(events []session.Event, err error) error {
	if err != nil && len(events) == 0 {
		return c.conn.WriteJSON(Error{Kind: KindError, Message: err.Error()})
	}
	if err := c.send(events); err != nil {
		return err
	}
	if err != nil {
		// the turn was applied but could not finish
		c.logger.Error("turn failed", "err", err)
		return c.conn.WriteJSON(Error{Kind: KindError, Message: err.Error()})
	}
	if c.sess.State().Over {
		c.save()
	}
	return nil
}

func (c *connection) send(events []session.Event) error {
	for _, ev := range events {
		if err := c.conn.WriteJSON(ev); err != nil {
			return err
		}
	}
	return c.conn.WriteJSON(Settled{Kind: KindSettled, State: c.sess.State()})
}

func (c *connection) ready() Ready {
	r := Ready{
		Kind:    KindReady,
		RunID:   c.runID,
		Level:   c.level.ID,
		Title:   c.level.Title(),
		Seed:    c.seed,
		Columns: c.sess.Columns(),
		Rows:    c.sess.Rows(),
	}
	for row := 0; row < r.Rows; row++ {
		line := make([]byte, r.Columns)
		for col := range line {
			line[col] = '.'
			if c.sess.TileAt(col, row) {
				line[col] = '#'
			}
		}
		r.Tiles = append(r.Tiles, string(line))
	}
	return r
}

// save records the run once, if a move was made.
func (c *connection) save() {
	st := c.sess.State()
	if c.saved || c.store == nil || st.MovesUsed == 0 {
		return
	}
	c.saved = true
	_, err := c.store.SaveResult(storage.Result{
		RunID:     c.runID,
		LevelID:   c.level.ID,
		Score:     st.Score,
		MovesUsed: st.MovesUsed,
		Won:       st.Won,
		Seed:      c.seed,
		Source:    "ws",
	})
	if err != nil {
		c.logger.Error("could not save result", "err", err)
	}
}

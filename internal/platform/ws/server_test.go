package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/session"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

// message is the union of everything the server sends.
type message struct {
	Kind    string          `json:"kind"`
	RunID   string          `json:"run_id"`
	Level   string          `json:"level"`
	Seed    int64           `json:"seed"`
	Columns int             `json:"columns"`
	Rows    int             `json:"rows"`
	Tiles   []string        `json:"tiles"`
	Swap    *engine.Swap    `json:"swap"`
	Message string          `json:"message"`
	Cookies []engine.Cookie `json:"cookies"`
	State   session.State   `json:"state"`
}

func startServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv := NewServer(DefaultServerConfig(), store, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	var m message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

// readTurn reads messages up to and including the next settled marker.
func readTurn(t *testing.T, conn *websocket.Conn) []message {
	t.Helper()
	var out []message
	for i := 0; i < 10000; i++ {
		m := read(t, conn)
		out = append(out, m)
		if m.Kind == KindSettled || m.Kind == KindError {
			return out
		}
	}
	t.Fatal("turn never settled")
	return nil
}

func kinds(msgs []message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Kind
	}
	return out
}

func TestLevelsEndpoint(t *testing.T) {
	ts := startServer(t, nil)

	resp, err := http.Get(ts.URL + "/levels")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []LevelInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))

	byID := map[string]LevelInfo{}
	for _, info := range infos {
		byID[info.ID] = info
	}
	require.Contains(t, byID, "level_0")
	assert.Equal(t, 1000, byID["level_0"].TargetScore)
	assert.Equal(t, 15, byID["level_0"].Moves)
	assert.True(t, byID["endless"].Endless)
}

func TestUnknownLevel(t *testing.T) {
	ts := startServer(t, nil)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?level=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadSeed(t *testing.T) {
	ts := startServer(t, nil)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?level=level_0&seed=abc"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReadyAndBegin(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "level=level_2&seed=9")

	ready := read(t, conn)
	assert.Equal(t, KindReady, ready.Kind)
	assert.Equal(t, "level_2", ready.Level)
	assert.Equal(t, int64(9), ready.Seed)
	assert.NotEmpty(t, ready.RunID)
	require.Len(t, ready.Tiles, ready.Rows)
	assert.Equal(t, "...", ready.Tiles[4][3:6], "level_2 has a hole in the middle")

	turn := readTurn(t, conn)
	assert.Equal(t, []string{string(session.EventBegin), KindSettled}, kinds(turn))
	assert.Len(t, turn[0].Cookies, 81-9)
	assert.Equal(t, 20, turn[1].State.MovesLeft)
}

func TestSameSeedSameBoard(t *testing.T) {
	ts := startServer(t, nil)
	a := dial(t, ts, "level=level_0&seed=4")
	b := dial(t, ts, "level=level_0&seed=4")
	read(t, a)
	read(t, b)
	assert.Equal(t, readTurn(t, a)[0].Cookies, readTurn(t, b)[0].Cookies)
}

func TestMalformedSwapIsRejected(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "level=level_0&seed=1")
	read(t, conn)
	readTurn(t, conn)

	require.NoError(t, conn.WriteJSON(Command{Type: CommandSwap, From: [2]int{0, 0}, To: [2]int{2, 0}}))
	reply := read(t, conn)
	assert.Equal(t, KindError, reply.Kind)
	assert.Contains(t, reply.Message, "not adjacent")

	require.NoError(t, conn.WriteJSON(Command{Type: "jump"}))
	reply = read(t, conn)
	assert.Equal(t, KindError, reply.Kind)

	// the game is untouched
	require.NoError(t, conn.WriteJSON(Command{Type: CommandShuffle}))
	turn := readTurn(t, conn)
	assert.Equal(t, 1, turn[len(turn)-1].State.MovesUsed)
}

func TestHintedSwapScores(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "level=level_0&seed=2")
	read(t, conn)
	readTurn(t, conn)

	require.NoError(t, conn.WriteJSON(Command{Type: CommandHint}))
	hint := read(t, conn)
	require.Equal(t, KindHint, hint.Kind)
	require.NotNil(t, hint.Swap)

	sw := hint.Swap
	require.NoError(t, conn.WriteJSON(Command{
		Type: CommandSwap,
		From: [2]int{sw.A.Column, sw.A.Row},
		To:   [2]int{sw.B.Column, sw.B.Row},
	}))
	turn := readTurn(t, conn)
	got := kinds(turn)
	require.GreaterOrEqual(t, len(got), 5)
	assert.Equal(t, []string{"swap", "match", "fall", "spawn"}, got[:4])
	assert.Equal(t, KindSettled, got[len(got)-1])

	st := turn[len(turn)-1].State
	assert.Equal(t, 1, st.MovesUsed)
	assert.GreaterOrEqual(t, st.Score, 60)
}

func TestFinishedRunIsStored(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	ts := startServer(t, store)
	conn := dial(t, ts, "level=level_0&seed=6")
	ready := read(t, conn)
	readTurn(t, conn)

	var last session.State
	for i := 0; i < 100 && !last.Over; i++ {
		require.NoError(t, conn.WriteJSON(Command{Type: CommandHint}))
		hint := read(t, conn)
		require.NotNil(t, hint.Swap)
		sw := hint.Swap
		require.NoError(t, conn.WriteJSON(Command{
			Type: CommandSwap,
			From: [2]int{sw.A.Column, sw.A.Row},
			To:   [2]int{sw.B.Column, sw.B.Row},
		}))
		turn := readTurn(t, conn)
		last = turn[len(turn)-1].State
	}
	require.True(t, last.Over)

	// further commands are refused
	require.NoError(t, conn.WriteJSON(Command{Type: CommandShuffle}))
	assert.Equal(t, KindError, read(t, conn).Kind)

	entry, err := store.ResultByRunID(ready.RunID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "level_0", entry.LevelID)
	assert.Equal(t, last.Score, entry.Score)
	assert.Equal(t, last.Won, entry.Won)
	assert.Equal(t, "ws", entry.Source)
	assert.Equal(t, int64(6), entry.Seed)
}

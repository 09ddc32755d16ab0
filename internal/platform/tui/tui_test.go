package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cookie-crunch/internal/core"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"

	_ "github.com/vovakirdan/cookie-crunch/internal/games/crunch"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"w", core.ActionUp, false},
		{"up", core.ActionUp, false},
		{"s", core.ActionDown, false},
		{"a", core.ActionLeft, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{" ", core.ActionSelect, false},
		{"enter", core.ActionConfirm, false},
		{"h", core.ActionHint, false},
		{"x", core.ActionShuffle, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(keyMsg("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(keyMsg("down")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(keyMsg("enter")))
	assert.Equal(t, MenuActionScores, km.MapKeyToMenuAction(keyMsg("tab")))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(keyMsg("b")))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(keyMsg("q")))
}

func TestRenderScreenReverse(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(1, 0, core.Cell{Rune: 'C', Color: core.ColorYellow, Reverse: true})
	out := RenderScreen(s)
	assert.Contains(t, out, "C")
	assert.Equal(t, 1, strings.Count(out, "\n")+1)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuItems(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveResult(storage.Result{LevelID: "level_1", Score: 1600, MovesUsed: 9, Won: true})
	require.NoError(t, err)

	items := MenuItems(store)
	require.Len(t, items, len(registry.List()))

	byID := map[string]MenuItem{}
	for _, it := range items {
		byID[it.LevelID] = it
	}
	require.Contains(t, byID, "level_1")
	assert.Equal(t, 1600, byID["level_1"].Best)
	assert.Equal(t, 1, byID["level_1"].Wins)
	assert.Equal(t, "1500 pts in 15 moves", byID["level_1"].Objective)
	assert.Equal(t, "endless", byID["endless"].Objective)
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, _ := m.Update(keyMsg("down"))
	m = next.(MenuModel)
	assert.Equal(t, 1, m.Cursor())

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	require.NotNil(t, cmd)
	res := menuResult(m)
	assert.Equal(t, registry.List()[1].ID, res.LevelID)
	assert.False(t, res.Quit)
}

func TestMenuScoreboard(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, _ := m.Update(keyMsg("tab"))
	res := menuResult(next.(MenuModel))
	assert.True(t, res.WantsScoreboard)
	assert.Equal(t, registry.List()[0].ID, res.ScoreboardLevel)
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	view := m.View()
	assert.Contains(t, view, "Select a level")
	for _, info := range registry.List() {
		assert.Contains(t, view, info.Title)
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{id: "level_0"}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 5}, Options{})

	tick := TickMsg{ID: m.tickLoop}
	next, _ := m.Update(tick)
	m = next.(Model)

	game.state = core.GameState{Score: 720, MovesUsed: 4, GameOver: true, Won: true}
	next, _ = m.Update(tick)
	m = next.(Model)
	next, _ = m.Update(tick)
	m = next.(Model)

	entries, err := store.AllScores("level_0")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 720, entries[0].Score)
	assert.Equal(t, 4, entries[0].MovesUsed)
	assert.True(t, entries[0].Won)
	assert.Equal(t, int64(5), entries[0].Seed)
	assert.Equal(t, "local", entries[0].Source)
	assert.Equal(t, entries[0].RunID, m.LastRunID())
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	game := &scriptedGame{id: "level_0"}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, Options{})

	next, cmd := m.Update(TickMsg{ID: m.tickLoop + 1000})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, next.(Model).game.(*scriptedGame).steps)

	m.Update(TickMsg{ID: m.tickLoop})
	assert.Equal(t, 1, game.steps)
}

func TestModelBackWhenOver(t *testing.T) {
	game := &scriptedGame{id: "level_0"}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, Options{Embedded: true})

	next, _ := m.Update(keyMsg("b"))
	m = next.(Model)
	assert.False(t, m.GoingBack(), "back during play only clears the selection")

	game.state.GameOver = true
	next, _ = m.Update(TickMsg{ID: m.tickLoop})
	m = next.(Model)
	next, cmd := m.Update(keyMsg("b"))
	m = next.(Model)
	assert.True(t, m.GoingBack())
	assert.Nil(t, cmd, "embedded models do not quit the program")
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &scriptedGame{id: "level_0"}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, Options{})
	require.Equal(t, 1, game.resets)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 1, game.resets)
	assert.Equal(t, 100, game.width)
}

// scriptedGame is a registry.Game whose state the test sets directly.
type scriptedGame struct {
	id     string
	state  core.GameState
	steps  int
	resets int
	width  int
}

func (g *scriptedGame) ID() string    { return g.id }
func (g *scriptedGame) Title() string { return g.id }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, g.id) }
func (g *scriptedGame) State() core.GameState    { return g.state }
func (g *scriptedGame) Resize(width, height int) { g.width = width }

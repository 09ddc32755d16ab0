package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cookie-crunch/internal/core"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID   string
	Title     string
	Objective string // e.g. "1500 pts in 15 moves"
	Best      int
	Wins      int
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// objective describes a level goal for the menu.
func objective(g registry.Game) string {
	cg, ok := g.(*crunch.Game)
	if !ok {
		return ""
	}
	lvl := cg.Level()
	switch {
	case lvl.Endless():
		return "endless"
	case lvl.TargetScore > 0:
		return fmt.Sprintf("%d pts in %d moves", lvl.TargetScore, lvl.Moves)
	default:
		return fmt.Sprintf("%d moves", lvl.Moves)
	}
}

// MenuItems lists every registered level with its stored statistics.
// store may be nil.
func MenuItems(store *storage.Store) []MenuItem {
	var stats map[string]*storage.LevelStats
	if store != nil {
		//nolint:errcheck // stats are decoration, the menu works without them
		stats, _ = store.GetAllLevelStats()
	}

	levels := registry.List()
	items := make([]MenuItem, 0, len(levels))
	for _, info := range levels {
		item := MenuItem{LevelID: info.ID, Title: info.Title}
		if g, err := registry.Create(info.ID); err == nil {
			item.Objective = objective(g)
		}
		if st, ok := stats[info.ID]; ok {
			item.Best = st.HighScore
			item.Wins = st.Wins
		}
		items = append(items, item)
	}
	return items
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     MenuItems(store),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScores:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle.Render("C O O K I E   C R U N C H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%-18s %-22s", item.Title, item.Objective)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		if item.Wins > 0 {
			line += " *"
		}
		if i == m.cursor {
			b.WriteString(centerStyled(menuPickStyle.Render("> "+line), m.width))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers text that may contain ANSI styling.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	ScoreboardLevel string // level highlighted when the scoreboard was opened
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return menuResult(m), nil
}

func menuResult(m MenuModel) MenuResult {
	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
		if len(m.items) > 0 {
			result.ScoreboardLevel = m.items[m.cursor].LevelID
		}
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().LevelID
	default:
		result.Quit = true
	}
	return result
}

// RunLoop runs menu, level and scoreboard screens until the player quits.
func RunLoop(store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	for {
		res, err := RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			back, err := RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, res.ScoreboardLevel)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		default:
			game, err := registry.Create(res.LevelID)
			if err != nil {
				return err
			}
			back, err := Run(game, store, cfg, opts)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		}
	}
}

package levels

import (
	"fmt"

	"github.com/vovakirdan/cookie-crunch/internal/config"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
)

// Validation error codes.
const (
	CodeBadDimensions = "BAD_DIMENSIONS"
	CodeRaggedRow     = "RAGGED_ROW"
	CodeEmptyMask     = "EMPTY_MASK"
	CodeBadObjective  = "BAD_OBJECTIVE"
)

// ValidationError describes why a level cannot be played.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	TargetScore int
	Moves       int
	Tiles       [][]bool // [row][column], row 0 at the top
	Metadata    map[string]string
	FilePath    string
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Endless reports whether the level has neither a target nor a move limit.
func (l Level) Endless() bool {
	return l.TargetScore == 0 && l.Moves == 0
}

// Validate checks the tile table and objective.
func (l Level) Validate() error {
	if len(l.Tiles) == 0 || len(l.Tiles[0]) == 0 {
		return ValidationError{Code: CodeBadDimensions, Message: fmt.Sprintf("level %s has no tiles", l.ID)}
	}
	columns := len(l.Tiles[0])
	playable := 0
	for r, row := range l.Tiles {
		if len(row) != columns {
			return ValidationError{
				Code:    CodeRaggedRow,
				Message: fmt.Sprintf("level %s row %d has %d tiles, want %d", l.ID, r, len(row), columns),
			}
		}
		for _, t := range row {
			if t {
				playable++
			}
		}
	}
	if playable == 0 {
		return ValidationError{Code: CodeEmptyMask, Message: fmt.Sprintf("level %s has no playable tiles", l.ID)}
	}
	if l.TargetScore < 0 || l.Moves < 0 {
		return ValidationError{
			Code:    CodeBadObjective,
			Message: fmt.Sprintf("level %s has target %d and moves %d", l.ID, l.TargetScore, l.Moves),
		}
	}
	if (l.TargetScore == 0) != (l.Moves == 0) {
		return ValidationError{
			Code:    CodeBadObjective,
			Message: fmt.Sprintf("level %s must set both target_score and moves, or neither", l.ID),
		}
	}
	return nil
}

// Mask builds the tile mask, checking it against the expected board size.
func (l Level) Mask(columns, rows int) (*engine.Mask, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if len(l.Tiles) != rows || len(l.Tiles[0]) != columns {
		return nil, ValidationError{
			Code: CodeBadDimensions,
			Message: fmt.Sprintf("level %s is %dx%d, board is %dx%d",
				l.ID, len(l.Tiles[0]), len(l.Tiles), columns, rows),
		}
	}
	return engine.NewMask(l.Tiles)
}

// Objective returns the level goal with the configured move adjustment.
func (l Level) Objective(cfg config.CrunchConfig) engine.Objective {
	return engine.Objective{
		TargetScore: l.TargetScore,
		MaxMoves:    cfg.MovesFor(l.Moves),
	}
}

// NewBoard creates an empty board for this level.
func (l Level) NewBoard(cfg config.CrunchConfig, src engine.Source) (*engine.Board, error) {
	mask, err := l.Mask(cfg.Board.Columns, cfg.Board.Rows)
	if err != nil {
		return nil, err
	}
	return engine.New(mask, l.Objective(cfg),
		engine.WithSource(src),
		engine.WithCookieTypes(cfg.Board.CookieTypes),
		engine.WithShuffleAttempts(cfg.Board.ShuffleAttempts),
		engine.WithScoring(engine.Scoring{
			ChainBase:     cfg.Scoring.ChainBase,
			ComboStep:     cfg.Scoring.ComboStep,
			ComboPerChain: cfg.Scoring.ComboPerChain,
		}),
	)
}

package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var Log = logrus.New()

type GameConfig struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	NumMines int      `yaml:"mines"`
	Mode     GameMode `yaml:"mode"`

	Seed int64 `yaml:"seed"`

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot `yaml:"-"`
	// Whether to set all cells as unrevealed when loading the Snapshot
	LoadSnapshotFresh bool `yaml:"load_snapshot_fresh"`

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string `yaml:"saved_snapshots_dir"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:             30,
		Height:            16,
		NumMines:          99,
		Mode:              Classic,
		Snapshot:          nil,
		LoadSnapshotFresh: true,
	}
}

// LoadConfig reads a YAML config file over the values already in config
func LoadConfig(path string, config *GameConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(b, config); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (mode GameMode) MarshalYAML() (interface{}, error) {
	return mode.String(), nil
}

func (mode *GameMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	m, isValid := GameModes[name]
	if !isValid {
		return fmt.Errorf("invalid game mode %q", name)
	}
	*mode = m
	return nil
}

func (config GameConfig) Fields() logrus.Fields {
	return logrus.Fields{
		"width":  config.Width,
		"height": config.Height,
		"mines":  config.NumMines,
		"mode":   config.Mode.String(),
		"seed":   config.Seed,
	}
}

func (config GameConfig) createBoard() (*Board, error) {
	if config.Snapshot == nil {
		return createFilledBoard(boardConfig{
			Width:    config.Width,
			Height:   config.Height,
			NumMines: config.NumMines,
			Mode:     config.Mode,
			Seed:     config.Seed,
		})
	} else {
		return config.Snapshot.CreateBoard(
			boardConfig{
				Mode: config.Mode,
			},
			config.LoadSnapshotFresh,
		)
	}
}

func (config GameConfig) onGameEnd(board *Board) {
	if config.SavedSnapshotsDir == "" {
		return
	}

	path, err := config.saveSnapshot(board, time.Now())
	if err != nil {
		Log.WithError(err).Warn("could not save snapshot")
		return
	}
	Log.WithField("path", path).Debug("saved snapshot")
}

func (config GameConfig) saveSnapshot(board *Board, t time.Time) (string, error) {
	stat, err := os.Stat(config.SavedSnapshotsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err := os.MkdirAll(config.SavedSnapshotsDir, 0777); err != nil {
			return "", err
		}
	} else if !stat.Mode().IsDir() {
		return "", fmt.Errorf("%s is not a directory; cannot save snapshots to it", config.SavedSnapshotsDir)
	}

	serialized, err := board.snapshot().Serialize()
	if err != nil {
		return "", err
	}

	base := config.generateReplayFilename(board, t)
	for attempt := 0; ; attempt++ {
		filename := base
		if attempt > 0 {
			filename = fmt.Sprintf("%s_%d", base, attempt)
		}
		path := filepath.Join(config.SavedSnapshotsDir, filename+".yaml")

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if errors.Is(err, os.ErrExist) {
			continue
		} else if err != nil {
			return "", err
		}

		_, err = file.WriteString(serialized)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		return path, err
	}
}

func (config GameConfig) generateReplayFilename(board *Board, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch board.state {
	case Won, Lost:
		stateStr = board.state.String()
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	return filenameBuilder.String()
}

type Result struct {
	State   BoardState
	Moves   int
	Guesses int
	Flags   int
	Board   *Board
}

func (result Result) Fields() logrus.Fields {
	return logrus.Fields{
		"state":   result.State.String(),
		"moves":   result.Moves,
		"guesses": result.Guesses,
		"flags":   result.Flags,
	}
}

// Play runs a single game to completion, asking director for each move and
// feeding it every cell revealed in return. The game ends when it is won or
// lost, or when the director has no moves left.
func Play(config GameConfig, director Director) (Result, error) {
	board, err := config.createBoard()
	if err != nil {
		return Result{}, err
	}

	director.Init(board.Height(), board.Width())
	reporter, reportsMines := director.(MineReporter)

	result := Result{Board: board}
	if err := resume(board, director); err != nil {
		return result, err
	}

	for board.canPlay() {
		move, ok := director.Act()
		if !ok {
			board.stall()
			break
		}

		result.Moves++
		if move.IsGuess() {
			result.Guesses++
		}

		Log.WithFields(logrus.Fields{
			"cell":     move.Cell.String(),
			"strategy": move.Strategy.String(),
		}).Debug("director move")

		reveals, err := board.Open(move.Cell)
		if err != nil {
			return result, err
		}
		if len(reveals) == 0 && board.canPlay() {
			return result, fmt.Errorf("%w: %v", ErrNoProgress, move.Cell)
		}

		for _, reveal := range reveals {
			if err := director.Observe(reveal.Cell, reveal.Count); err != nil {
				return result, fmt.Errorf("observe %v=%d: %w", reveal.Cell, reveal.Count, err)
			}
		}

		if reportsMines {
			for _, mine := range reporter.Mines() {
				if !board.IsFlagged(mine) {
					if err := board.Flag(mine); err != nil {
						return result, err
					}
					result.Flags++
				}
			}
		}
	}

	result.State = board.state
	config.onGameEnd(board)

	Log.WithFields(result.Fields()).Debugf("game over\n%s", board)

	return result, nil
}

// resume catches director up on a board restored part way through a game,
// feeding it every revealed cell in row-major order. Flags left on the board
// are lifted; the director places its own.
func resume(board *Board, director Director) error {
	if !board.canPlay() {
		return nil
	}

	for _, cell := range board.bounds.Cells() {
		switch {
		case board.IsRevealed(cell):
			count := board.NearbyMines(cell)
			if err := director.Observe(cell, count); err != nil {
				return fmt.Errorf("observe %v=%d: %w", cell, count, err)
			}
		case board.IsFlagged(cell):
			board.Unflag(cell)
		}
	}
	return nil
}

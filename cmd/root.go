package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/they4kman/sweepai/director/constraint"
	"github.com/they4kman/sweepai/director/random"
	"github.com/they4kman/sweepai/game"
)

var gameConfig = game.NewGameConfig()

var (
	directorName string
	numGames     int
	configPath   string
	snapshotPath string
	verbose      bool
)

var directors = map[string]func(r *rand.Rand) game.Director{
	"constraint": func(r *rand.Rand) game.Director {
		return &constraint.Director{Rand: r}
	},
	"random": func(r *rand.Rand) game.Director {
		return &random.Director{Rand: r}
	},
}

var rootCmd = &cobra.Command{
	Use:   "sweepai",
	Short: "Let the computer play Minesweeper",
	Long: `sweepai plays games of Minesweeper without a human, by deducing
which cells are safe or mines from the numbers it uncovers.

Play a single expert game
	sweepai

Play a hundred beginner games and report how many were won
	sweepai -w 9 -h 9 -m 10 -n 100

Replay the mine layout of a saved board
	sweepai --snapshot snapshots/20200101_120000_loss.yaml
`,
	SilenceUsage: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			game.Log.SetLevel(logrus.DebugLevel)
			constraint.Log.SetLevel(logrus.DebugLevel)
		}

		if configPath != "" {
			if err := loadConfigFile(cmd.Flags(), configPath); err != nil {
				return err
			}
		}

		if snapshotPath != "" {
			in, err := os.ReadFile(snapshotPath)
			if err != nil {
				return err
			}
			if gameConfig.Snapshot, err = game.LoadSnapshot(string(in)); err != nil {
				return fmt.Errorf("snapshot %s: %w", snapshotPath, err)
			}
		}

		if _, isValid := directors[directorName]; !isValid {
			return fmt.Errorf("unknown director %q, expected one of: %s", directorName, strings.Join(directorNames(), ", "))
		}
		if numGames < 1 {
			return fmt.Errorf("number of games must be positive")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("seed") && gameConfig.Seed == 0 {
			gameConfig.Seed = time.Now().UnixNano()
		}

		game.Log.WithFields(gameConfig.Fields()).WithFields(logrus.Fields{
			"director": directorName,
			"games":    numGames,
		}).Info("starting")

		summary := make(map[game.BoardState]int)
		for i := range numGames {
			config := gameConfig
			config.Seed = gameConfig.Seed + int64(i)

			directorRand := rand.New(rand.NewPCG(uint64(config.Seed), 1))
			director := directors[directorName](directorRand)

			result, err := game.Play(config, director)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, config.Seed, err)
			}
			summary[result.State]++

			game.Log.WithFields(result.Fields()).WithField("seed", config.Seed).Info("game finished")
		}

		game.Log.WithFields(logrus.Fields{
			"won":     summary[game.Won],
			"lost":    summary[game.Lost],
			"stalled": summary[game.Stalled],
			"winRate": fmt.Sprintf("%.1f%%", 100*float64(summary[game.Won])/float64(numGames)),
		}).Info("summary")
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfigFile reads the config file over the defaults, keeping any values
// given explicitly on the command line
func loadConfigFile(flags *pflag.FlagSet, path string) error {
	explicit := make(map[string]string)
	flags.Visit(func(flag *pflag.Flag) {
		explicit[flag.Name] = flag.Value.String()
	})

	if err := game.LoadConfig(path, &gameConfig); err != nil {
		return err
	}

	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func directorNames() []string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type gameModeValue game.GameMode

func newGameModeValue(val game.GameMode, p *game.GameMode) *gameModeValue {
	*p = val
	return (*gameModeValue)(p)
}

func (modeVal *gameModeValue) String() string {
	return game.GameMode(*modeVal).String()
}

func (modeVal *gameModeValue) Set(value string) error {
	if mode, isValid := game.GameModes[value]; isValid {
		*modeVal = gameModeValue(mode)
		return nil
	} else {
		return fmt.Errorf("invalid game mode")
	}
}

func (modeVal *gameModeValue) Type() string {
	return "game.GameMode"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().IntVarP(&gameConfig.Width, "width", "w", 30, "Width of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.Height, "height", "h", 16, "Height of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.NumMines, "mines", "m", 99, "Number of mines to place in the game board")
	rootCmd.Flags().Var(newGameModeValue(game.Classic, &gameConfig.Mode), "mode", `Game mode, controlling behaviour of first click.
win7: all cells surrounding the first-clicked cell are cleared of mines (first click never loses)
classic: mines are left as is (first click can lose the game)`)
	rootCmd.Flags().Int64Var(&gameConfig.Seed, "seed", 0, "Seed of the first game; each following game adds one (default: current time)")
	rootCmd.Flags().StringVar(&gameConfig.SavedSnapshotsDir, "save-snapshots", "", "Directory to save the final board of every game to")

	rootCmd.Flags().StringVarP(&directorName, "director", "d", "constraint", "Which computer player to use: "+strings.Join(directorNames(), ", "))
	rootCmd.Flags().IntVarP(&numGames, "games", "n", 1, "Number of games to play")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML file of game settings; flags given explicitly take precedence")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML board snapshot to replay the mine layout of")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every move and inference pass")
}

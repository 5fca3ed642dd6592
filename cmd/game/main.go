// gardengun is a side-scrolling platformer: shoot seeds into fertile ground,
// grow trees to climb on, defeat every goblin and leave through the gate.
//
// Usage:
//
//	gardengun                       - Start at the main menu
//	gardengun --level level-2       - Jump straight into a level
//	gardengun --editor --level X    - Edit a level: P play-tests, R reloads the file
//	gardengun --record run.json     - Record input while playing
//	gardengun replay run.json       - Replay a recording headless and print the outcome
//
// Global flags:
//
//	--data <dir>         - Read game.yaml and levels/ from a directory instead of the embedded set
//	--store <kind>       - Progress storage: gdata, sqlite or memory (default: gdata)
//	--db <path>          - SQLite database path for --store sqlite
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/gardengun/internal/application/game"
	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/application/replay"
	"github.com/younwookim/gardengun/internal/application/scene/playing"
	"github.com/younwookim/gardengun/internal/application/session"
	"github.com/younwookim/gardengun/internal/infrastructure/logging"
)

// AppName names the per-user data directory progress is saved in
const AppName = "gardengun"

var (
	// Global flags
	flagDataDir  string
	flagStore    string
	flagDBPath   string
	flagLogLevel string

	// Play flags
	flagEditor bool
	flagLevel  string
	flagRecord string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gardengun",
	Short: "Gardening Gun - plant trees with a seed gun to reach the exit",
	Long: `Gardening Gun is a 2.5D platformer. Pick up seed ammunition, shoot it
onto fertile ground to grow trees, defeat the goblins and walk through the gate.

Controls:
  Arrows/A/D  - Run
  Z/J         - Jump
  X/K         - Shoot
  Esc         - Pause
  Enter/Space - Confirm in menus
  P           - Editor: play-test / back to editing
  R           - Editor: reload the level file

Examples:
  gardengun
  gardengun --level level-2
  gardengun --editor --level level-1 --data ./cmd/game/configs
  gardengun replay replay_20250101_120000.json`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", "", "Directory with game.yaml and levels/ (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storeGdata, "Progress storage: gdata, sqlite, memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "gardengun.db", "SQLite database path for --store sqlite")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.Flags().BoolVar(&flagEditor, "editor", false, "Open --level in the level editor")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "Level to start in, without .yaml")
	rootCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g., --record replay.json)")

	rootCmd.AddCommand(replayCmd)
}

// levelFilename turns a --level value into an index filename
func levelFilename(name string) string {
	if name == "" || strings.HasSuffix(name, ".yaml") {
		return name
	}
	return name + ".yaml"
}

func runGame(cmd *cobra.Command, _ []string) error {
	logger := logging.New(os.Stderr, flagLogLevel)
	opts := session.Options{Editor: flagEditor, StartLevel: levelFilename(flagLevel)}

	app, err := openApp(logger, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	scene := playing.New(app.Config, app.Session, input.Keyboard{}, logger)
	if flagRecord != "" {
		scene.WithRecorder(replay.NewRecorder(opts.StartLevel, opts.Editor), flagRecord)
		logger.Info("recording enabled", "file", flagRecord)
	}

	display := app.Config.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.DT(), logger)
	defer g.Close()

	scale := max(display.Scale, 1)
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle("Gardening Gun")
	ebiten.SetTPS(display.TPS)

	return ebiten.RunGame(g)
}

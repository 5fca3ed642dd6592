package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/gardengun/internal/application/replay"
	"github.com/younwookim/gardengun/internal/application/session"
	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/logging"
)

// indexTimeout bounds the wait for the level index before replaying
const indexTimeout = 5 * time.Second

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a recording without a window",
	Long: `Feed a recorded input file through the game frame by frame and print
where it ended: the final state, the level and the player's position.

The game has no randomness, so a recording always ends the same way as the
session it was taken from, given the same levels and stored progress.

Examples:
  gardengun replay replay_20250101_120000.json
  gardengun replay run.json --store memory`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

// ReplayResult is where a replay ended
type ReplayResult struct {
	Frames    int
	State     state.AppState
	Level     string
	Unlocked  int
	Player    ecs.Vec3
	HasPlayer bool
	Alive     bool
	Quit      bool
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, flagLogLevel)

	result, err := replayData(currentSettings(), logger, data)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), result)
	return nil
}

// replayData runs a recording to its end on a fresh session. The level index
// is waited for first so menus look the same on every run.
func replayData(settings appSettings, logger *log.Logger, data *replay.ReplayData) (ReplayResult, error) {
	a, err := openAppWith(settings, logger, session.Options{Editor: data.Editor, StartLevel: data.Level})
	if err != nil {
		return ReplayResult{}, err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if _, err := a.Index.Wait(ctx); err != nil {
		return ReplayResult{}, fmt.Errorf("level index: %w", err)
	}

	replayer := replay.NewReplayer(*data)
	for {
		in, ok := replayer.Next()
		if !ok {
			break
		}
		if err := a.Session.Step(in); err != nil {
			return ReplayResult{}, fmt.Errorf("frame %d: %w", replayer.CurrentFrame(), err)
		}
		if a.Session.Done() {
			break
		}
	}
	return summarize(a.Session), nil
}

func summarize(s *session.Session) ReplayResult {
	result := ReplayResult{
		Frames:   s.Frame(),
		State:    s.State(),
		Level:    s.Progress().CurrentLevel,
		Unlocked: s.Progress().NumLevelsUnlocked,
		Quit:     s.Done(),
	}
	w := s.World()
	if player, ok := w.Player(); ok {
		result.HasPlayer = true
		result.Player = w.GlobalTransform(player).Translation
		result.Alive = w.Killable[player].Alive
	}
	return result
}

func printResult(out io.Writer, r ReplayResult) {
	fmt.Fprintf(out, "frames:   %d\n", r.Frames)
	fmt.Fprintf(out, "state:    %s\n", r.State)
	fmt.Fprintf(out, "level:    %s\n", r.Level)
	fmt.Fprintf(out, "unlocked: %d\n", r.Unlocked)
	if r.HasPlayer {
		fmt.Fprintf(out, "player:   (%.3f, %.3f) alive=%t\n", r.Player.X, r.Player.Y, r.Alive)
	}
	if r.Quit {
		fmt.Fprintln(out, "quit from the main menu")
	}
}

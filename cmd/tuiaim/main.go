// Package main provides the CLI entrypoint for tuiaim.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiaim/internal/config"
	"github.com/verte-zerg/tuiaim/internal/engine"
	"github.com/verte-zerg/tuiaim/internal/generator"
	"github.com/verte-zerg/tuiaim/internal/model"
	"github.com/verte-zerg/tuiaim/internal/stats"
	"github.com/verte-zerg/tuiaim/internal/store"
	"github.com/verte-zerg/tuiaim/internal/tui"
)

const (
	defaultMode        = model.ModeChallenge
	defaultDifficulty  = model.DifficultyMedium
	defaultHitPolicy   = model.HitAll
	defaultCurveWindow = 5
	defaultCrosshair   = "classic"
)

var errNotTerminal = errors.New("tuiaim needs an interactive terminal")

var (
	practiceMode        string
	practiceDifficulty  string
	practiceSeed        int64
	practiceHitPolicy   string
	practiceWidth       float64
	practiceHeight      float64
	practiceCurveWindow int
	practiceSound       bool

	crosshairPreset    string
	crosshairColor     string
	crosshairSize      int
	crosshairGap       int
	crosshairThickness int
	crosshairDot       bool

	checkpointSlot   string
	checkpointDelete bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tuiaim"})

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiaim",
		Short:         "TUI aim and reflex trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceMode, "mode", string(defaultMode), "training mode (challenge, precision, reflex, moving, tracking, doubleshot)")
	flags.StringVar(&practiceDifficulty, "difficulty", string(defaultDifficulty), "difficulty (easy, medium, hard)")
	flags.Int64Var(&practiceSeed, "seed", 0, "random seed for reproducible sessions (0 = random)")
	flags.StringVar(&practiceHitPolicy, "hit-policy", string(defaultHitPolicy), "overlapping targets per click (all, nearest)")
	flags.Float64Var(&practiceWidth, "width", engine.DefaultSurface.Width, "play surface width in surface units")
	flags.Float64Var(&practiceHeight, "height", engine.DefaultSurface.Height, "play surface height in surface units")
	flags.IntVar(&practiceCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the reaction trend")
	flags.BoolVar(&practiceSound, "sound", false, "ring the terminal bell on hits and misses")
	flags.StringVar(&crosshairPreset, "crosshair", defaultCrosshair, "crosshair preset (classic, dot, cross, circle)")
	flags.StringVar(&crosshairColor, "crosshair-color", "", "crosshair color (hex or ANSI code)")
	flags.IntVar(&crosshairSize, "crosshair-size", 0, "crosshair arm length in cells (0 = preset)")
	flags.IntVar(&crosshairGap, "crosshair-gap", 0, "crosshair center gap in cells (0 = preset)")
	flags.IntVar(&crosshairThickness, "crosshair-thickness", 0, "crosshair line thickness (0 = preset)")
	flags.BoolVar(&crosshairDot, "crosshair-dot", false, "draw a center dot")
	flags.StringVar(&checkpointSlot, "slot", store.DefaultSlot, "checkpoint slot used by suspend and resume")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newResumeCmd())
	rootCmd.AddCommand(newCheckpointsCmd())

	return rootCmd
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFileConfig(cmd, fileCfg)

	cfg := model.Config{
		Mode:        model.Mode(strings.ToLower(strings.TrimSpace(practiceMode))),
		Difficulty:  model.Difficulty(strings.ToLower(strings.TrimSpace(practiceDifficulty))),
		Seed:        practiceSeed,
		HitPolicy:   model.HitPolicy(strings.ToLower(strings.TrimSpace(practiceHitPolicy))),
		Width:       practiceWidth,
		Height:      practiceHeight,
		CurveWindow: practiceCurveWindow,
		Sound:       practiceSound,
		Crosshair: model.Crosshair{
			Preset:    crosshairPreset,
			Color:     crosshairColor,
			Size:      crosshairSize,
			Gap:       crosshairGap,
			Thickness: crosshairThickness,
			Dot:       crosshairDot,
		},
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	resolved, err := model.ResolveCrosshair(cfg.Crosshair)
	if err != nil {
		return model.Config{}, err
	}
	cfg.Crosshair = resolved
	return cfg, nil
}

func applyFileConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)
	applyStringConfig(cmd, "hit-policy", &practiceHitPolicy, fileCfg.Practice.HitPolicy)
	applyFloatConfig(cmd, "width", &practiceWidth, fileCfg.Practice.Width)
	applyFloatConfig(cmd, "height", &practiceHeight, fileCfg.Practice.Height)
	applyIntConfig(cmd, "curve-window", &practiceCurveWindow, fileCfg.Practice.CurveWindow)
	applyBoolConfig(cmd, "sound", &practiceSound, fileCfg.Sound.Enabled)
	applyStringConfig(cmd, "crosshair", &crosshairPreset, fileCfg.Crosshair.Preset)
	applyStringConfig(cmd, "crosshair-color", &crosshairColor, fileCfg.Crosshair.Color)
	applyIntConfig(cmd, "crosshair-size", &crosshairSize, fileCfg.Crosshair.Size)
	applyIntConfig(cmd, "crosshair-gap", &crosshairGap, fileCfg.Crosshair.Gap)
	applyIntConfig(cmd, "crosshair-thickness", &crosshairThickness, fileCfg.Crosshair.Thickness)
	applyBoolConfig(cmd, "crosshair-dot", &crosshairDot, fileCfg.Crosshair.Dot)
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	session := engine.New(cfg.Mode, cfg.Difficulty, engineOptions(cfg))
	return runSession(cmd.OutOrStdout(), cfg, session, false)
}

func engineOptions(cfg model.Config) engine.Options {
	opts := engine.Options{
		Surface:   engine.Surface{Width: cfg.Width, Height: cfg.Height},
		HitPolicy: cfg.HitPolicy,
	}
	if cfg.Seed != 0 {
		opts.Rand = generator.NewSeeded(cfg.Seed)
	} else {
		opts.Rand = generator.New()
	}
	if cfg.Sound {
		opts.Listener = tui.NewBellListener(os.Stderr)
	}
	return opts
}

// runSession hosts session in the TUI and prints the summary once it ends.
// resumed sessions consume their checkpoint unless they are suspended again.
func runSession(out io.Writer, cfg model.Config, session *engine.Session, resumed bool) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("checkpoint store unavailable; suspend is disabled", "err", err)
		st = nil
	}
	defer func() {
		if st == nil {
			return
		}
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	m := tui.NewModel(session, tui.Options{
		Crosshair:  cfg.Crosshair,
		Store:      st,
		Logger:     logger,
		Checkpoint: checkpointSlot,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if m.Suspended() {
		logger.Info("session suspended", "slot", checkpointSlot, "resume", "tuiaim resume --slot "+checkpointSlot)
		return nil
	}
	if resumed && st != nil {
		if err := st.Delete(context.Background(), checkpointSlot); err != nil && !errors.Is(err, store.ErrNoCheckpoint) {
			logger.Warn("failed to clear checkpoint", "slot", checkpointSlot, "err", err)
		}
	}
	return stats.RenderSummary(out, session.Mode(), session.Difficulty(), session.Stats(), cfg.CurveWindow)
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a suspended session",
		Args:  cobra.NoArgs,
		RunE:  runResumeCmd,
	}
}

func runResumeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	session, err := restoreSession(cmd.Context(), cfg, time.Now())
	if err != nil {
		return err
	}
	return runSession(cmd.OutOrStdout(), cfg, session, true)
}

func restoreSession(ctx context.Context, cfg model.Config, now time.Time) (*engine.Session, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()
	cp, err := st.Load(ctx, checkpointSlot)
	if err != nil {
		if errors.Is(err, store.ErrNoCheckpoint) {
			return nil, fmt.Errorf("nothing to resume in slot %q (press s during a session to suspend it): %w", checkpointSlot, err)
		}
		return nil, err
	}
	snap, err := engine.DecodeSnapshot(cp.Payload)
	if err != nil {
		return nil, err
	}
	session, err := engine.Restore(snap, engineOptions(cfg), now)
	if err != nil {
		return nil, err
	}
	if session.Phase() != model.PhasePlaying {
		return nil, fmt.Errorf("checkpoint %q holds a %s session", checkpointSlot, session.Phase())
	}
	return session, nil
}

func newCheckpointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "List or delete suspended sessions",
		Args:  cobra.NoArgs,
		RunE:  runCheckpointsCmd,
	}
	cmd.Flags().BoolVar(&checkpointDelete, "delete", false, "delete the checkpoint named by --slot")
	return cmd
}

func runCheckpointsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()
	return checkpointsCommand(cmd.Context(), cmd.OutOrStdout(), st, checkpointDelete, checkpointSlot)
}

func checkpointsCommand(ctx context.Context, out io.Writer, st *store.Store, del bool, slot string) error {
	if del {
		if err := st.Delete(ctx, slot); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "Deleted checkpoint %q\n", slot)
		return err
	}
	list, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list checkpoints: %w", err)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "No suspended sessions.")
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, cp := range list {
		rows = append(rows, []string{
			cp.Name,
			string(cp.Mode),
			string(cp.Difficulty),
			fmt.Sprintf("%d", cp.Lives),
			fmt.Sprintf("%d", cp.Hits),
			stats.FormatClock(cp.Elapsed),
			cp.SavedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	headers := []string{"Slot", "Mode", "Difficulty", "Lives", "Hits", "Time", "Saved"}
	return stats.WriteTable(out, headers, rows, map[int]bool{3: true, 4: true})
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List training modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeModes(cmd.OutOrStdout())
		},
	}
}

func writeModes(out io.Writer) error {
	rows := make([][]string, 0, len(model.Modes))
	for _, mode := range model.Modes {
		rows = append(rows, []string{string(mode), tui.ModeSummary(mode)})
	}
	return stats.WriteTable(out, []string{"Mode", "Rules"}, rows, nil)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiaim configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q          # challenge, precision, reflex, moving, tracking, doubleshot
# difficulty = %q       # easy, medium, hard
# seed = 0                  # Fixed random seed (0 = random)
# hit-policy = %q          # all: one click hits every overlapping target; nearest: only the closest
# width = %.1f             # Play surface width
# height = %.1f            # Play surface height
# curve-window = %d          # Moving average window for the reaction trend

[crosshair]
# preset = %q         # classic, dot, cross, circle
# color = %q        # Hex or ANSI color
# size = 0                  # Arm length in cells (0 = preset)
# gap = 0                   # Center gap in cells (0 = preset)
# thickness = 0             # Line thickness (0 = preset)
# dot = false               # Draw a center dot

[sound]
# enabled = false           # Ring the terminal bell on hits and misses
`,
		defaultMode,
		defaultDifficulty,
		defaultHitPolicy,
		engine.DefaultSurface.Width,
		engine.DefaultSurface.Height,
		defaultCurveWindow,
		defaultCrosshair,
		model.DefaultCrosshairColor,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := model.ParseMode(string(cfg.Mode)); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if _, err := model.ParseDifficulty(string(cfg.Difficulty)); err != nil {
		return fmt.Errorf("--difficulty: %w", err)
	}
	if _, err := model.ParseHitPolicy(string(cfg.HitPolicy)); err != nil {
		return fmt.Errorf("--hit-policy: %w", err)
	}
	if cfg.Width <= 2*engine.SpawnMargin {
		return fmt.Errorf("--width must be > %.0f", 2*engine.SpawnMargin)
	}
	if cfg.Height <= 2*engine.SpawnMargin {
		return fmt.Errorf("--height must be > %.0f", 2*engine.SpawnMargin)
	}
	if cfg.CurveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}
	if cfg.Crosshair.Size < 0 || cfg.Crosshair.Gap < 0 || cfg.Crosshair.Thickness < 0 {
		return fmt.Errorf("crosshair size, gap and thickness must be >= 0")
	}
	return nil
}

// Package main provides the CLI entrypoint for sukoon.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Vartika-Seth/Sukoon/internal/audio"
	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/config"
	"github.com/Vartika-Seth/Sukoon/internal/kv"
	"github.com/Vartika-Seth/Sukoon/internal/stats"
	"github.com/Vartika-Seth/Sukoon/internal/store"
	"github.com/Vartika-Seth/Sukoon/internal/tui"
)

var (
	practiceDuration  int
	practiceTrack     int
	practiceVolume    float64
	practiceAutoScore bool
	practiceName      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sukoon",
		Short:         "Guided meditation, journaling and mood tracking in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceDuration, "duration", config.DefaultDuration, "session length in minutes (1-60)")
	rootCmd.Flags().IntVar(&practiceTrack, "track", config.DefaultTrack, "ambient track id")
	rootCmd.Flags().Float64Var(&practiceVolume, "volume", config.DefaultVolume, "ambient volume (0-1)")
	rootCmd.Flags().BoolVar(&practiceAutoScore, "auto-score", config.DefaultAutoScore, "score reflections for tone")
	rootCmd.Flags().StringVar(&practiceName, "name", "", "your name (asked on first run when unset)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newNameCmd())
	rootCmd.AddCommand(newHomeCmd())
	rootCmd.AddCommand(newJournalCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newLearnCmd())
	rootCmd.AddCommand(newAmbientCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// resolveSettings layers built-in defaults, the config file and explicit flags.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	settings := config.DefaultSettings().Merge(fileCfg.Practice)
	applyIntFlag(cmd, "duration", &settings.Duration, practiceDuration)
	applyIntFlag(cmd, "track", &settings.Track, practiceTrack)
	applyFloatFlag(cmd, "volume", &settings.Volume, practiceVolume)
	applyBoolFlag(cmd, "auto-score", &settings.AutoScore, practiceAutoScore)
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	return withRecords(func(ctx context.Context, records *store.Records) error {
		if err := ensureProfile(ctx, records, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
			return err
		}
		m := tui.NewModel(tui.Options{
			Records:  records,
			Synth:    audio.NewSynth(audio.DefaultSampleRate),
			Settings: settings,
		})
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		if _, ok := m.Completion(); ok {
			return printHome(cmd.OutOrStdout(), records, catalog.NewPicker(), time.Now())
		}
		return nil
	})
}

// withRecords opens the database, loads the record store and closes the
// database after fn returns.
func withRecords(fn func(ctx context.Context, records *store.Records) error) error {
	ctx := context.Background()
	db, err := kv.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	records := store.Open(ctx, db, store.Options{Logf: logErrf})
	return fn(ctx, records)
}

// ensureProfile asks for a name when no profile is stored yet.
func ensureProfile(ctx context.Context, records *store.Records, in io.Reader, out io.Writer) error {
	if _, ok := records.Profile(); ok {
		return nil
	}
	name := strings.TrimSpace(practiceName)
	if name == "" {
		if _, err := fmt.Fprint(out, "Welcome to Sukoon. What should we call you? "); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
		line, err := readLine(in)
		if err != nil {
			return fmt.Errorf("failed to read name: %w", err)
		}
		name = strings.TrimSpace(line)
	}
	if name == "" {
		return fmt.Errorf("a name is required; pass --name or run: sukoon name <name>")
	}
	if res := records.SaveProfile(ctx, name); !res.OK() {
		logErrf("profile not saved: %v\n", res.Err)
	}
	return nil
}

// readLine reads up to and excluding '\n' one byte at a time, so nothing past
// the line is consumed before the TUI takes over the reader.
func readLine(in io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <name>",
		Short: "Set the name used in greetings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("name must not be empty")
			}
			return withRecords(func(ctx context.Context, records *store.Records) error {
				if res := records.SaveProfile(ctx, name); !res.OK() {
					return fmt.Errorf("failed to save profile: %w", res.Err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s.\n", name)
				return err
			})
		},
	}
}

func newHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show greeting, daily insight and suggestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRecords(func(_ context.Context, records *store.Records) error {
				return printHome(cmd.OutOrStdout(), records, catalog.NewPicker(), time.Now())
			})
		},
	}
}

func printHome(w io.Writer, records *store.Records, picker *catalog.Picker, now time.Time) error {
	greeting := catalog.Greeting(now.Hour())
	if profile, ok := records.Profile(); ok {
		greeting += ", " + profile.Name
	}
	sessions := records.Sessions()
	lines := []string{
		"🪷 Sukoon",
		greeting,
		"",
		"Today's Mindful Insight",
		fmt.Sprintf("  %q", picker.Affirmation()),
	}
	if len(sessions) > 0 {
		rec := stats.Recommend(sessions, records.Journals())
		lines = append(lines,
			"",
			"Suggestion for You",
			fmt.Sprintf("  %s %s: %s", rec.Type.Icon(), rec.Type.Name(), rec.Message),
			"",
			fmt.Sprintf("Sessions %d · Minutes %d · Day streak %d", len(sessions), stats.TotalMinutes(sessions), stats.Streak(sessions, now)),
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
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
		if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyFloatFlag(cmd *cobra.Command, name string, target *float64, value float64) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

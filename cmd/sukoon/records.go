package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Vartika-Seth/Sukoon/internal/audio"
	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/model"
	"github.com/Vartika-Seth/Sukoon/internal/progressui"
	"github.com/Vartika-Seth/Sukoon/internal/sentiment"
	"github.com/Vartika-Seth/Sukoon/internal/stats"
	"github.com/Vartika-Seth/Sukoon/internal/store"
)

const (
	defaultAmbientSeconds = 30
	defaultJournalLast    = 10
)

var (
	journalMood int
	journalTags string
	journalLast int

	progressPlain bool

	ambientTrack   int
	ambientSeconds float64
	ambientOut     string
	ambientList    bool
	ambientVolume  float64

	exportFormat string
	exportOut    string
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write or read journal entries",
	}
	add := &cobra.Command{
		Use:   "add <reflection>",
		Short: "Add a manual journal entry",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runJournalAddCmd,
	}
	add.Flags().IntVar(&journalMood, "mood", 3, "how you feel (1-5)")
	add.Flags().StringVar(&journalTags, "tags", "", "comma-separated practice ids, e.g. calm,sleep")
	add.Flags().BoolVar(&practiceAutoScore, "auto-score", true, "score the reflection for tone")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent journal entries",
		Args:  cobra.NoArgs,
		RunE:  runJournalListCmd,
	}
	list.Flags().IntVar(&journalLast, "last", defaultJournalLast, "number of entries to show (0 for all)")

	cmd.AddCommand(add, list)
	return cmd
}

func runJournalAddCmd(cmd *cobra.Command, args []string) error {
	reflection := strings.TrimSpace(strings.Join(args, " "))
	if reflection == "" {
		return fmt.Errorf("reflection must not be empty")
	}
	if !model.ValidMood(journalMood) {
		return fmt.Errorf("--mood must be between %d and %d", model.MinMood, model.MaxMood)
	}
	tags, err := parseTags(journalTags)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	entry := model.JournalEntry{
		Type:       model.ManualEntryType,
		MoodBefore: journalMood,
		MoodAfter:  journalMood,
		Reflection: reflection,
		Tags:       tags,
	}
	if settings.AutoScore {
		score := sentiment.Score(reflection)
		entry.Sentiment = &score
	}
	return withRecords(func(ctx context.Context, records *store.Records) error {
		saved, res := records.AppendJournal(ctx, entry)
		if !res.OK() {
			return fmt.Errorf("failed to save journal entry: %w", res.Err)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved entry for %s.\n", saved.Date.Local().Format("Jan 2, 2006"))
		return err
	})
}

func parseTags(raw string) ([]catalog.Practice, error) {
	tags := []catalog.Practice{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := catalog.ParsePractice(part)
		if err != nil {
			return nil, fmt.Errorf("invalid --tags: %w", err)
		}
		tags = append(tags, p)
	}
	return tags, nil
}

func runJournalListCmd(cmd *cobra.Command, _ []string) error {
	return withRecords(func(_ context.Context, records *store.Records) error {
		return printJournal(cmd.OutOrStdout(), records.Journals(), journalLast)
	})
}

// printJournal writes the last n entries, newest first.
func printJournal(w io.Writer, journals []model.JournalEntry, n int) error {
	if len(journals) == 0 {
		_, err := fmt.Fprintln(w, "No journal entries yet.")
		return err
	}
	if n > 0 && len(journals) > n {
		journals = journals[len(journals)-n:]
	}
	bw := bufio.NewWriter(w)
	for i := len(journals) - 1; i >= 0; i-- {
		j := journals[i]
		moodLabel := ""
		if mood, ok := catalog.MoodFor(j.MoodAfter); ok {
			moodLabel = " " + mood.Emoji
		}
		fmt.Fprintf(bw, "%s  %s  mood %d → %d%s\n", j.Date.Local().Format("2006-01-02 15:04"), j.Type, j.MoodBefore, j.MoodAfter, moodLabel)
		if j.Reflection != "" {
			fmt.Fprintf(bw, "  %s\n", j.Reflection)
		}
		if len(j.Tags) > 0 {
			names := make([]string, len(j.Tags))
			for k, t := range j.Tags {
				names[k] = t.Name()
			}
			fmt.Fprintf(bw, "  tags: %s\n", strings.Join(names, ", "))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show progress and insights",
		Args:  cobra.NoArgs,
		RunE:  runProgressCmd,
	}
	cmd.Flags().BoolVar(&progressPlain, "plain", false, "print a text report instead of the dashboard")
	return cmd
}

func runProgressCmd(cmd *cobra.Command, _ []string) error {
	return withRecords(func(_ context.Context, records *store.Records) error {
		if progressPlain {
			return printProgress(cmd.OutOrStdout(), records, time.Now(), 0, false)
		}
		program := tea.NewProgram(progressui.NewModel(records, nil), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run progress TUI: %w", err)
		}
		return nil
	})
}

func printProgress(w io.Writer, h stats.History, now time.Time, width int, useColor bool) error {
	p := stats.BuildProgress(h, now)
	if err := stats.RenderSummary(w, p); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if p.Sessions == 0 {
		return nil
	}
	if err := stats.RenderDistribution(w, p.Distribution); err != nil {
		return fmt.Errorf("failed to write distribution: %w", err)
	}
	if err := stats.RenderMoodTrend(w, p.Trend, width, useColor); err != nil {
		return fmt.Errorf("failed to write mood trend: %w", err)
	}
	return nil
}

func newLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Browse the meditation library",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRecords(func(_ context.Context, records *store.Records) error {
				return printLibrary(cmd.OutOrStdout(), records)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <title|number>",
		Short: "Read an article",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := findContent(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s · %s\n\n%s\n", content.Icon, content.Title, content.Category, content.Description, strings.TrimSpace(content.FullContent))
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "bookmark <title|number>",
		Short: "Bookmark an article, or remove its bookmark",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := findContent(args)
			if err != nil {
				return err
			}
			return withRecords(func(ctx context.Context, records *store.Records) error {
				bookmarked, res := records.ToggleBookmark(ctx, content)
				if !res.OK() {
					return fmt.Errorf("failed to save bookmarks: %w", res.Err)
				}
				state := "Removed bookmark"
				if bookmarked {
					state = "Bookmarked"
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, content.Title)
				return err
			})
		},
	})
	return cmd
}

func findContent(args []string) (catalog.LearnContent, error) {
	key := strings.Join(args, " ")
	content, ok := catalog.FindContent(key)
	if !ok {
		return catalog.LearnContent{}, fmt.Errorf("no article matches %q (see: sukoon learn list)", key)
	}
	return content, nil
}

func printLibrary(w io.Writer, records *store.Records) error {
	for i, c := range catalog.LearnContents() {
		mark := " "
		if records.IsBookmarked(c.Title) {
			mark = "★"
		}
		if _, err := fmt.Fprintf(w, "%s %d. %s %s (%s)\n     %s\n", mark, i+1, c.Icon, c.Title, c.Category, c.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newAmbientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ambient",
		Short: "Render an ambient track to a WAV file",
		Args:  cobra.NoArgs,
		RunE:  runAmbientCmd,
	}
	cmd.Flags().IntVar(&ambientTrack, "track", 1, "ambient track id")
	cmd.Flags().Float64Var(&ambientSeconds, "seconds", defaultAmbientSeconds, "length in seconds")
	cmd.Flags().StringVar(&ambientOut, "out", "", "output file (default: <track>.wav)")
	cmd.Flags().BoolVar(&ambientList, "list", false, "list tracks and exit")
	cmd.Flags().Float64Var(&ambientVolume, "volume", -1, "pin every voice to this volume (0-1)")
	return cmd
}

func runAmbientCmd(cmd *cobra.Command, _ []string) error {
	if ambientList {
		for _, t := range catalog.Tracks() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d  %s %s (%s, %s)\n", t.ID, t.Emoji, t.Name, t.Category, audio.SoundscapeFor(t.ID)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}
	track, ok := catalog.TrackByID(ambientTrack)
	if !ok {
		logErrf("unknown track %d, using %s\n", ambientTrack, track.Name)
	}
	if ambientSeconds <= 0 {
		return fmt.Errorf("--seconds must be > 0")
	}
	out := ambientOut
	if out == "" {
		out = strings.ReplaceAll(strings.ToLower(track.Name), " ", "-") + ".wav"
	}
	synth := audio.NewSynth(audio.DefaultSampleRate)
	synth.Play(track.ID)
	if cmd.Flags().Changed("volume") {
		if ambientVolume < 0 || ambientVolume > 1 {
			return fmt.Errorf("--volume must be between 0 and 1")
		}
		synth.SetVolume(ambientVolume)
	}
	if err := writeFileAtomic(out, func(w io.Writer) error {
		return audio.WriteWAV(w, synth, ambientSeconds)
	}); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logErrf("Wrote %s (%s, %.0fs)\n", out, track.Name, ambientSeconds)
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all records",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "json", "json or yaml")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	return cmd
}

type exportDoc struct {
	Profile   *model.Profile       `json:"profile,omitempty" yaml:"profile,omitempty"`
	Sessions  []model.Session      `json:"sessions" yaml:"sessions"`
	Journals  []model.JournalEntry `json:"journals" yaml:"journals"`
	Bookmarks []model.Bookmark     `json:"bookmarks" yaml:"bookmarks"`
}

func newExportDoc(records *store.Records) exportDoc {
	doc := exportDoc{
		Sessions:  records.Sessions(),
		Journals:  records.Journals(),
		Bookmarks: records.Bookmarks(),
	}
	if profile, ok := records.Profile(); ok {
		doc.Profile = &profile
	}
	if doc.Sessions == nil {
		doc.Sessions = []model.Session{}
	}
	if doc.Journals == nil {
		doc.Journals = []model.JournalEntry{}
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []model.Bookmark{}
	}
	return doc
}

func encodeExport(w io.Writer, doc exportDoc, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown --format %q (use json or yaml)", format)
	}
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	return withRecords(func(_ context.Context, records *store.Records) error {
		doc := newExportDoc(records)
		if exportOut == "" {
			return encodeExport(cmd.OutOrStdout(), doc, exportFormat)
		}
		if err := writeFileAtomic(exportOut, func(w io.Writer) error {
			return encodeExport(w, doc, exportFormat)
		}); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		logErrln("Wrote", exportOut)
		return nil
	})
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, ".sukoon-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := write(writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close: %w", err)
	}
	return os.Rename(tmpPath, path)
}

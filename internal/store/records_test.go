package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/kv"
	"github.com/Vartika-Seth/Sukoon/internal/model"
)

type failingStorage struct {
	getErr error
	setErr error
	values map[string]string
}

func (f *failingStorage) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *failingStorage) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func quietOptions() Options {
	return Options{
		Logf: func(string, ...any) {},
		Now: func() time.Time {
			return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		},
	}
}

func TestOpenFirstRunIsEmpty(t *testing.T) {
	r := Open(context.Background(), kv.NewMemory(), quietOptions())
	if _, ok := r.Profile(); ok {
		t.Fatalf("expected no profile on first run")
	}
	if len(r.Sessions()) != 0 || len(r.Journals()) != 0 || len(r.Bookmarks()) != 0 {
		t.Fatalf("expected empty collections")
	}
}

func TestRecordsRoundTripThroughSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sukoon.db")
	st, err := kv.Open(path)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	r := Open(ctx, st, quietOptions())
	if res := r.SaveProfile(ctx, "Asha"); !res.OK() {
		t.Fatalf("save profile: %v", res.Err)
	}
	saved, res := r.AppendSession(ctx, model.Session{
		Type:       catalog.Focus,
		Duration:   10,
		MoodBefore: 2,
		MoodAfter:  4,
	})
	if !res.OK() {
		t.Fatalf("append session: %v", res.Err)
	}
	if saved.ID == "" || saved.Date.IsZero() {
		t.Fatalf("expected stamped session, got %+v", saved)
	}
	if _, res := r.AppendJournal(ctx, model.JournalEntry{Type: model.ManualEntryType, MoodBefore: 3, MoodAfter: 3, Reflection: "quiet"}); !res.OK() {
		t.Fatalf("append journal: %v", res.Err)
	}
	if _, res := r.ToggleBookmark(ctx, catalog.LearnContents()[0]); !res.OK() {
		t.Fatalf("toggle bookmark: %v", res.Err)
	}

	reloaded := Open(ctx, st, quietOptions())
	profile, ok := reloaded.Profile()
	if !ok || profile.Name != "Asha" {
		t.Fatalf("unexpected profile: %+v ok=%v", profile, ok)
	}
	sessions := reloaded.Sessions()
	if len(sessions) != 1 || sessions[0].ID != saved.ID || sessions[0].Type != catalog.Focus {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
	journals := reloaded.Journals()
	if len(journals) != 1 || journals[0].Reflection != "quiet" || journals[0].Tags == nil {
		t.Fatalf("unexpected journals: %+v", journals)
	}
	if !reloaded.IsBookmarked(catalog.LearnContents()[0].Title) {
		t.Fatalf("expected bookmark to persist")
	}
}

func TestMalformedDataFallsBackToEmpty(t *testing.T) {
	storage := &failingStorage{values: map[string]string{
		KeyProfile:   `{"username": "Ravi"}`,
		KeySessions:  `{not json`,
		KeyJournals:  `[{"id": 1, "type": "Manual Entry", "moodBefore": 3, "moodAfter": 3}]`,
		KeyBookmarks: `"oops"`,
	}}
	var logged []string
	opts := quietOptions()
	opts.Logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}
	r := Open(context.Background(), storage, opts)
	if p, ok := r.Profile(); !ok || p.Name != "Ravi" {
		t.Fatalf("expected profile to load independently, got %+v", p)
	}
	if len(r.Sessions()) != 0 {
		t.Fatalf("expected malformed sessions to be dropped")
	}
	if len(r.Journals()) != 1 {
		t.Fatalf("expected legacy journal to load, got %d", len(r.Journals()))
	}
	if len(r.Bookmarks()) != 0 {
		t.Fatalf("expected malformed bookmarks to be dropped")
	}
	if len(logged) != 2 {
		t.Fatalf("expected 2 decode warnings, got %d: %v", len(logged), logged)
	}
}

func TestReadErrorFallsBackToEmpty(t *testing.T) {
	r := Open(context.Background(), &failingStorage{getErr: errors.New("disk gone")}, quietOptions())
	if _, ok := r.Profile(); ok {
		t.Fatalf("expected no profile")
	}
	if len(r.Sessions()) != 0 {
		t.Fatalf("expected empty sessions")
	}
}

func TestWriteFailureKeepsMemoryAndReportsResult(t *testing.T) {
	boom := errors.New("disk full")
	var results []SaveResult
	opts := quietOptions()
	opts.OnSave = func(res SaveResult) {
		results = append(results, res)
	}
	r := Open(context.Background(), &failingStorage{setErr: boom}, opts)

	_, res := r.AppendSession(context.Background(), model.Session{Type: catalog.Calm, Duration: 5, MoodBefore: 3, MoodAfter: 3})
	if res.OK() || !errors.Is(res.Err, boom) {
		t.Fatalf("expected write error, got %v", res.Err)
	}
	if res.Key != KeySessions {
		t.Fatalf("unexpected key: %s", res.Key)
	}
	if len(r.Sessions()) != 1 {
		t.Fatalf("expected in-memory session to survive write failure")
	}
	if !errors.Is(r.LastError(), boom) {
		t.Fatalf("expected LastError to report failure, got %v", r.LastError())
	}
	if len(results) != 1 || results[0].OK() {
		t.Fatalf("expected one failed OnSave result, got %+v", results)
	}
}

func TestToggleBookmarkTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	r := Open(ctx, kv.NewMemory(), quietOptions())
	first := catalog.LearnContents()[1]
	other := catalog.LearnContents()[2]
	r.ToggleBookmark(ctx, other)

	before := r.Bookmarks()
	on, _ := r.ToggleBookmark(ctx, first)
	if !on || !r.IsBookmarked(first.Title) {
		t.Fatalf("expected bookmark to be added")
	}
	off, _ := r.ToggleBookmark(ctx, first)
	if off || r.IsBookmarked(first.Title) {
		t.Fatalf("expected bookmark to be removed")
	}
	after := r.Bookmarks()
	if len(before) != len(after) || after[0].Title != other.Title {
		t.Fatalf("expected original bookmarks, got %+v", after)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	ctx := context.Background()
	r := Open(ctx, kv.NewMemory(), quietOptions())
	r.AppendSession(ctx, model.Session{Type: catalog.Calm, Duration: 5, MoodBefore: 3, MoodAfter: 4})
	sessions := r.Sessions()
	sessions[0].Duration = 60
	if r.Sessions()[0].Duration != 5 {
		t.Fatalf("expected history to be immutable through accessors")
	}
}

// Package store keeps the user's records and persists them to a key-value store.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/kv"
	"github.com/Vartika-Seth/Sukoon/internal/model"
)

// Storage keys.
const (
	KeyProfile   = "sukoon-user"
	KeySessions  = "sukoon-sessions"
	KeyJournals  = "sukoon-journals"
	KeyBookmarks = "sukoon-bookmarks"
)

// SaveResult reports the outcome of one collection write.
type SaveResult struct {
	Key string
	Err error
}

// OK reports whether the write succeeded.
func (r SaveResult) OK() bool {
	return r.Err == nil
}

// Options configures Records.
type Options struct {
	// Logf receives load and save failures. Defaults to stderr.
	Logf func(format string, args ...any)
	// OnSave is called after every write attempt.
	OnSave func(SaveResult)
	// Now stamps new records. Defaults to time.Now.
	Now func() time.Time
}

// Records is the in-memory copy of the user's data. Memory is authoritative;
// writes are best-effort and are never rolled back.
type Records struct {
	storage kv.Storage
	opts    Options

	profile    model.Profile
	hasProfile bool
	sessions   []model.Session
	journals   []model.JournalEntry
	bookmarks  []model.Bookmark

	lastErr error
}

// Open loads all collections from storage. Missing, unreadable, or malformed
// collections start empty; Open never fails.
func Open(ctx context.Context, storage kv.Storage, opts Options) *Records {
	if opts.Logf == nil {
		opts.Logf = logErrf
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &Records{storage: storage, opts: opts}

	var profile model.Profile
	if r.load(ctx, KeyProfile, &profile) && profile.Name != "" {
		r.profile = profile
		r.hasProfile = true
	}
	if !r.load(ctx, KeySessions, &r.sessions) {
		r.sessions = nil
	}
	if !r.load(ctx, KeyJournals, &r.journals) {
		r.journals = nil
	}
	if !r.load(ctx, KeyBookmarks, &r.bookmarks) {
		r.bookmarks = nil
	}
	return r
}

func (r *Records) load(ctx context.Context, key string, target any) bool {
	raw, ok, err := r.storage.Get(ctx, key)
	if err != nil {
		r.opts.Logf("failed to read %s: %v\n", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		r.opts.Logf("failed to decode %s, starting empty: %v\n", key, err)
		return false
	}
	return true
}

func (r *Records) save(ctx context.Context, key string, value any) SaveResult {
	result := SaveResult{Key: key}
	data, err := json.Marshal(value)
	if err != nil {
		result.Err = fmt.Errorf("encode %s: %w", key, err)
	} else if err := r.storage.Set(ctx, key, string(data)); err != nil {
		result.Err = fmt.Errorf("write %s: %w", key, err)
	}
	if result.Err != nil {
		r.lastErr = result.Err
		r.opts.Logf("failed to save: %v\n", result.Err)
	}
	if r.opts.OnSave != nil {
		r.opts.OnSave(result)
	}
	return result
}

// LastError returns the most recent write failure, if any.
func (r *Records) LastError() error {
	return r.lastErr
}

// Profile returns the stored profile and whether one exists.
func (r *Records) Profile() (model.Profile, bool) {
	return r.profile, r.hasProfile
}

// SaveProfile sets and persists the user's name.
func (r *Records) SaveProfile(ctx context.Context, name string) SaveResult {
	r.profile = model.Profile{Name: name}
	r.hasProfile = true
	return r.save(ctx, KeyProfile, r.profile)
}

// Sessions returns a copy of the session history in insertion order.
func (r *Records) Sessions() []model.Session {
	return append([]model.Session(nil), r.sessions...)
}

// Journals returns a copy of the journal in insertion order.
func (r *Records) Journals() []model.JournalEntry {
	return append([]model.JournalEntry(nil), r.journals...)
}

// Bookmarks returns a copy of the bookmarked articles.
func (r *Records) Bookmarks() []model.Bookmark {
	return append([]model.Bookmark(nil), r.bookmarks...)
}

// AppendSession stamps s with an id and date when unset, appends it, and
// rewrites the session collection.
func (r *Records) AppendSession(ctx context.Context, s model.Session) (model.Session, SaveResult) {
	if s.ID == "" {
		s.ID = model.NewRecordID()
	}
	if s.Date.IsZero() {
		s.Date = r.opts.Now()
	}
	r.sessions = append(r.sessions, s)
	return s, r.save(ctx, KeySessions, r.sessions)
}

// AppendJournal stamps j with an id and date when unset, appends it, and
// rewrites the journal collection.
func (r *Records) AppendJournal(ctx context.Context, j model.JournalEntry) (model.JournalEntry, SaveResult) {
	if j.ID == "" {
		j.ID = model.NewRecordID()
	}
	if j.Date.IsZero() {
		j.Date = r.opts.Now()
	}
	if j.Tags == nil {
		j.Tags = []catalog.Practice{}
	}
	r.journals = append(r.journals, j)
	return j, r.save(ctx, KeyJournals, r.journals)
}

// IsBookmarked reports whether an article with title is bookmarked.
func (r *Records) IsBookmarked(title string) bool {
	return r.bookmarkIndex(title) >= 0
}

// ToggleBookmark removes the article if bookmarked, otherwise adds it.
// It returns the new bookmarked state.
func (r *Records) ToggleBookmark(ctx context.Context, content model.Bookmark) (bool, SaveResult) {
	idx := r.bookmarkIndex(content.Title)
	bookmarked := idx < 0
	if bookmarked {
		r.bookmarks = append(r.bookmarks, content)
	} else {
		next := make([]model.Bookmark, 0, len(r.bookmarks)-1)
		next = append(next, r.bookmarks[:idx]...)
		next = append(next, r.bookmarks[idx+1:]...)
		r.bookmarks = next
	}
	return bookmarked, r.save(ctx, KeyBookmarks, r.bookmarks)
}

func (r *Records) bookmarkIndex(title string) int {
	for i, b := range r.bookmarks {
		if b.Title == title {
			return i
		}
	}
	return -1
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

package store

import (
	"context"
)

// JournalEntry is the object representing a symptom/mood journal entry.
type JournalEntry struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Content   string
	Mood      string
}

// FindJournalEntry is the find condition for journal entries.
type FindJournalEntry struct {
	UserID *int32
	// Since filters entries created at or after this unix timestamp.
	Since *int64
	Limit *int
}

// CreateJournalEntry creates a new journal entry.
func (s *Store) CreateJournalEntry(ctx context.Context, create *JournalEntry) (*JournalEntry, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreateJournalEntry(ctx, create)
}

// ListJournalEntries lists journal entries with filter, newest first.
func (s *Store) ListJournalEntries(ctx context.Context, find *FindJournalEntry) ([]*JournalEntry, error) {
	return s.driver.ListJournalEntries(ctx, find)
}

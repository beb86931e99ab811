package postgres

import (
	"context"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreateJournalEntry(ctx context.Context, create *store.JournalEntry) (*store.JournalEntry, error) {
	stmt := `INSERT INTO journal_entry (uid, user_id, content, mood)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Content, create.Mood,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	return create, nil
}

func (d *DB) ListJournalEntries(ctx context.Context, find *store.FindJournalEntry) ([]*store.JournalEntry, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Since; v != nil {
		where, args = append(where, "created_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, content, mood
		FROM journal_entry WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	list := make([]*store.JournalEntry, 0)
	for rows.Next() {
		var entry store.JournalEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UID,
			&entry.UserID,
			&entry.CreatedTs,
			&entry.Content,
			&entry.Mood,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		list = append(list, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return list, nil
}

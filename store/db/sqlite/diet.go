package sqlite

import (
	"context"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreateDietEntry(ctx context.Context, create *store.DietEntry) (*store.DietEntry, error) {
	stmt := `INSERT INTO diet_entry (uid, user_id, meal, items)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Meal, create.Items,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create diet entry: %w", err)
	}

	return create, nil
}

func (d *DB) ListDietEntries(ctx context.Context, find *store.FindDietEntry) ([]*store.DietEntry, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Since; v != nil {
		where, args = append(where, "created_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, meal, items
		FROM diet_entry WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query diet entries: %w", err)
	}
	defer rows.Close()

	list := make([]*store.DietEntry, 0)
	for rows.Next() {
		var entry store.DietEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UID,
			&entry.UserID,
			&entry.CreatedTs,
			&entry.Meal,
			&entry.Items,
		); err != nil {
			return nil, fmt.Errorf("failed to scan diet entry: %w", err)
		}
		list = append(list, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diet entries: %w", err)
	}

	return list, nil
}

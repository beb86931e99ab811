package postgres

import (
	"context"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreateResearchItem(ctx context.Context, create *store.ResearchItem) (*store.ResearchItem, error) {
	stmt := `INSERT INTO research_item (uid, user_id, title, authors, url, summary)
		VALUES (` + placeholders(6) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Title, create.Authors, create.URL, create.Summary,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create research item: %w", err)
	}

	return create, nil
}

func (d *DB) ListResearchItems(ctx context.Context, find *store.FindResearchItem) ([]*store.ResearchItem, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, title, authors, url, summary
		FROM research_item WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query research items: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ResearchItem, 0)
	for rows.Next() {
		var item store.ResearchItem
		if err := rows.Scan(
			&item.ID,
			&item.UID,
			&item.UserID,
			&item.CreatedTs,
			&item.Title,
			&item.Authors,
			&item.URL,
			&item.Summary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan research item: %w", err)
		}
		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate research items: %w", err)
	}

	return list, nil
}

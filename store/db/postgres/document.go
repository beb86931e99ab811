package postgres

import (
	"context"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreateDocument(ctx context.Context, create *store.Document) (*store.Document, error) {
	stmt := `INSERT INTO document (uid, user_id, title, kind, content)
		VALUES (` + placeholders(5) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Title, create.Kind, create.Text,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return create, nil
}

func (d *DB) ListDocuments(ctx context.Context, find *store.FindDocument) ([]*store.Document, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, title, kind, content
		FROM document WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Document, 0)
	for rows.Next() {
		var doc store.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.UID,
			&doc.UserID,
			&doc.CreatedTs,
			&doc.Title,
			&doc.Kind,
			&doc.Text,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		list = append(list, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return list, nil
}

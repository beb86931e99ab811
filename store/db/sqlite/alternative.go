package sqlite

import (
	"context"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreateAlternativeTreatment(ctx context.Context, create *store.AlternativeTreatment) (*store.AlternativeTreatment, error) {
	stmt := `INSERT INTO alternative_treatment (uid, user_id, name, kind, notes)
		VALUES (` + placeholders(5) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Name, create.Kind, create.Notes,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create alternative treatment: %w", err)
	}

	return create, nil
}

func (d *DB) ListAlternativeTreatments(ctx context.Context, find *store.FindAlternativeTreatment) ([]*store.AlternativeTreatment, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, name, kind, notes
		FROM alternative_treatment WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alternative treatments: %w", err)
	}
	defer rows.Close()

	list := make([]*store.AlternativeTreatment, 0)
	for rows.Next() {
		var alt store.AlternativeTreatment
		if err := rows.Scan(
			&alt.ID,
			&alt.UID,
			&alt.UserID,
			&alt.CreatedTs,
			&alt.Name,
			&alt.Kind,
			&alt.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alternative treatment: %w", err)
		}
		list = append(list, &alt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alternative treatments: %w", err)
	}

	return list, nil
}

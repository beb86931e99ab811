package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreateTreatment(ctx context.Context, create *store.Treatment) (*store.Treatment, error) {
	sideEffects, err := json.Marshal(create.SideEffects)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal side effects: %w", err)
	}

	stmt := `INSERT INTO treatment (uid, user_id, name, kind, start_ts, end_ts, active, side_effects)
		VALUES (` + placeholders(8) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Name, create.Kind, create.StartTs, create.EndTs, create.Active, string(sideEffects),
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create treatment: %w", err)
	}

	return create, nil
}

func (d *DB) ListTreatments(ctx context.Context, find *store.FindTreatment) ([]*store.Treatment, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Active; v != nil {
		where, args = append(where, "active = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, name, kind, start_ts, end_ts, active, side_effects
		FROM treatment WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query treatments: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Treatment, 0)
	for rows.Next() {
		var treatment store.Treatment
		var endTs sql.NullInt64
		var sideEffects string
		if err := rows.Scan(
			&treatment.ID,
			&treatment.UID,
			&treatment.UserID,
			&treatment.CreatedTs,
			&treatment.Name,
			&treatment.Kind,
			&treatment.StartTs,
			&endTs,
			&treatment.Active,
			&sideEffects,
		); err != nil {
			return nil, fmt.Errorf("failed to scan treatment: %w", err)
		}
		if endTs.Valid {
			treatment.EndTs = &endTs.Int64
		}
		if sideEffects != "" {
			if err := json.Unmarshal([]byte(sideEffects), &treatment.SideEffects); err != nil {
				return nil, fmt.Errorf("failed to unmarshal side effects: %w", err)
			}
		}
		list = append(list, &treatment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate treatments: %w", err)
	}

	return list, nil
}

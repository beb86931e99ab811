package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) CreatePlanItem(ctx context.Context, create *store.PlanItem) (*store.PlanItem, error) {
	stmt := `INSERT INTO plan_item (uid, user_id, type, title, notes, due_ts, completed)
		VALUES (` + placeholders(7) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.UserID, create.Type, create.Title, create.Notes, create.DueTs, create.Completed,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create plan item: %w", err)
	}

	return create, nil
}

func (d *DB) ListPlanItems(ctx context.Context, find *store.FindPlanItem) ([]*store.PlanItem, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Completed; v != nil {
		where, args = append(where, "completed = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(find.Types) > 0 {
		list := []string{}
		for _, t := range find.Types {
			list = append(list, placeholder(len(args)+1))
			args = append(args, t)
		}
		where = append(where, "type IN ("+strings.Join(list, ", ")+")")
	}

	query := `SELECT id, uid, user_id, created_ts, type, title, notes, due_ts, completed
		FROM plan_item WHERE ` + joinWhere(where) + ` ORDER BY created_ts DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan items: %w", err)
	}
	defer rows.Close()

	list := make([]*store.PlanItem, 0)
	for rows.Next() {
		var item store.PlanItem
		var dueTs sql.NullInt64
		if err := rows.Scan(
			&item.ID,
			&item.UID,
			&item.UserID,
			&item.CreatedTs,
			&item.Type,
			&item.Title,
			&item.Notes,
			&dueTs,
			&item.Completed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan item: %w", err)
		}
		if dueTs.Valid {
			item.DueTs = &dueTs.Int64
		}
		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan items: %w", err)
	}

	return list, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenhealth/lumen/store"
)

func (d *DB) UpsertUserProfile(ctx context.Context, upsert *store.UserProfile) (*store.UserProfile, error) {
	stmt := `INSERT INTO user_profile (uid, user_id, name, diagnosis, stage, allergies, notes)
		VALUES (` + placeholders(7) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			diagnosis = excluded.diagnosis,
			stage = excluded.stage,
			allergies = excluded.allergies,
			notes = excluded.notes,
			updated_ts = EXTRACT(EPOCH FROM NOW())
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.UID, upsert.UserID, upsert.Name, upsert.Diagnosis, upsert.Stage, upsert.Allergies, upsert.Notes,
	).Scan(&upsert.ID, &upsert.CreatedTs, &upsert.UpdatedTs); err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return upsert, nil
}

func (d *DB) GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, created_ts, updated_ts, name, diagnosis, stage, allergies, notes
		FROM user_profile WHERE ` + joinWhere(where)

	var userProfile store.UserProfile
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&userProfile.ID,
		&userProfile.UID,
		&userProfile.UserID,
		&userProfile.CreatedTs,
		&userProfile.UpdatedTs,
		&userProfile.Name,
		&userProfile.Diagnosis,
		&userProfile.Stage,
		&userProfile.Allergies,
		&userProfile.Notes,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return &userProfile, nil
}

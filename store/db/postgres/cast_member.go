package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateCastMember(ctx context.Context, create *store.CastMember) (*store.CastMember, error) {
	if create.Status == "" {
		create.Status = "CONFIRMED"
	}
	stmt := `INSERT INTO cast_member (uid, project_id, name, character_name, cast_number, status)
	         VALUES ($1, $2, $3, $4, $5, $6)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.ProjectID, create.Name, create.Character, create.CastNumber, create.Status,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListCastMembers(ctx context.Context, find *store.FindCastMember) ([]*store.CastMember, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, project_id, name, character_name, cast_number, status, created_ts, updated_ts
		 FROM cast_member WHERE %s ORDER BY cast_number, id`,
		strings.Join(where, " AND "),
	)
	if v := find.Limit; v != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *v)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.CastMember
	for rows.Next() {
		c := &store.CastMember{}
		if err := rows.Scan(&c.ID, &c.UID, &c.ProjectID, &c.Name, &c.Character, &c.CastNumber,
			&c.Status, &c.CreatedTs, &c.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (d *DB) UpdateCastMember(ctx context.Context, update *store.UpdateCastMember) (*store.CastMember, error) {
	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Character; v != nil {
		set, args = append(set, "character_name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.CastNumber; v != nil {
		set, args = append(set, "cast_number = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return d.getCastMember(ctx, update.UID)
	}
	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE cast_member SET %s WHERE uid = %s", strings.Join(set, ", "), placeholder(len(args)))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getCastMember(ctx, update.UID)
}

func (d *DB) DeleteCastMember(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM cast_member WHERE uid = $1", uid)
	return err
}

func (d *DB) getCastMember(ctx context.Context, uid string) (*store.CastMember, error) {
	list, err := d.ListCastMembers(ctx, &store.FindCastMember{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("cast member %s not found", uid)
	}
	return list[0], nil
}

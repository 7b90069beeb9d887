package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateLocation(ctx context.Context, create *store.Location) (*store.Location, error) {
	stmt := `INSERT INTO location (uid, project_id, name, address, notes) VALUES ($1, $2, $3, $4, $5)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.ProjectID, create.Name, create.Address, create.Notes,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListLocations(ctx context.Context, find *store.FindLocation) ([]*store.Location, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT id, uid, project_id, name, address, notes, created_ts, updated_ts FROM location WHERE %s ORDER BY id",
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

	var list []*store.Location
	for rows.Next() {
		l := &store.Location{}
		if err := rows.Scan(&l.ID, &l.UID, &l.ProjectID, &l.Name, &l.Address, &l.Notes,
			&l.CreatedTs, &l.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (d *DB) UpdateLocation(ctx context.Context, update *store.UpdateLocation) (*store.Location, error) {
	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Address; v != nil {
		set, args = append(set, "address = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return d.getLocation(ctx, update.UID)
	}
	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE location SET %s WHERE uid = %s", strings.Join(set, ", "), placeholder(len(args)))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getLocation(ctx, update.UID)
}

func (d *DB) DeleteLocation(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM location WHERE uid = $1", uid)
	return err
}

func (d *DB) getLocation(ctx context.Context, uid string) (*store.Location, error) {
	list, err := d.ListLocations(ctx, &store.FindLocation{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("location %s not found", uid)
	}
	return list[0], nil
}

package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateLocation(ctx context.Context, create *store.Location) (*store.Location, error) {
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO `location` (`uid`, `project_id`, `name`, `address`, `notes`) VALUES (?, ?, ?, ?, ?)",
		create.UID, create.ProjectID, create.Name, create.Address, create.Notes,
	)
	if err != nil {
		return nil, err
	}
	return d.getLocation(ctx, create.UID)
}

func (d *DB) ListLocations(ctx context.Context, find *store.FindLocation) ([]*store.Location, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "`project_id` = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "`uid` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT `id`, `uid`, `project_id`, `name`, `address`, `notes`, "+
			"UNIX_TIMESTAMP(`created_ts`), UNIX_TIMESTAMP(`updated_ts`) FROM `location` WHERE %s ORDER BY `id`",
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
		set, args = append(set, "`name` = ?"), append(args, *v)
	}
	if v := update.Address; v != nil {
		set, args = append(set, "`address` = ?"), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "`notes` = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return d.getLocation(ctx, update.UID)
	}
	set = append(set, "`updated_ts` = CURRENT_TIMESTAMP")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE `location` SET %s WHERE `uid` = ?", strings.Join(set, ", "))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getLocation(ctx, update.UID)
}

func (d *DB) DeleteLocation(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `location` WHERE `uid` = ?", uid)
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

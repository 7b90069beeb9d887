package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateElement(ctx context.Context, create *store.Element) (*store.Element, error) {
	if create.Quantity == 0 {
		create.Quantity = 1
	}
	stmt := `INSERT INTO element (uid, project_id, scene_uid, category, name, quantity)
	         VALUES ($1, $2, $3, $4, $5, $6)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.ProjectID, create.SceneUID, create.Category, create.Name, create.Quantity,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListElements(ctx context.Context, find *store.FindElement) ([]*store.Element, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SceneUID; v != nil {
		where, args = append(where, "scene_uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Category; v != nil {
		where, args = append(where, "category = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT id, uid, project_id, scene_uid, category, name, quantity, created_ts, updated_ts FROM element WHERE %s ORDER BY id",
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

	var list []*store.Element
	for rows.Next() {
		e := &store.Element{}
		if err := rows.Scan(&e.ID, &e.UID, &e.ProjectID, &e.SceneUID, &e.Category, &e.Name,
			&e.Quantity, &e.CreatedTs, &e.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (d *DB) UpdateElement(ctx context.Context, update *store.UpdateElement) (*store.Element, error) {
	set, args := []string{}, []any{}
	if v := update.SceneUID; v != nil {
		set, args = append(set, "scene_uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Category; v != nil {
		set, args = append(set, "category = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Quantity; v != nil {
		set, args = append(set, "quantity = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return d.getElement(ctx, update.UID)
	}
	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE element SET %s WHERE uid = %s", strings.Join(set, ", "), placeholder(len(args)))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getElement(ctx, update.UID)
}

func (d *DB) DeleteElement(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM element WHERE uid = $1", uid)
	return err
}

func (d *DB) getElement(ctx context.Context, uid string) (*store.Element, error) {
	list, err := d.ListElements(ctx, &store.FindElement{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("element %s not found", uid)
	}
	return list[0], nil
}

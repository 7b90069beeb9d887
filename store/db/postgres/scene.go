package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateScene(ctx context.Context, create *store.Scene) (*store.Scene, error) {
	if create.Status == "" {
		create.Status = store.SceneStatusDraft
	}
	stmt := `INSERT INTO scene (uid, project_id, number, heading, synopsis, page_eighths, status, sort_order)
	         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.ProjectID, create.Number, create.Heading, create.Synopsis,
		create.PageEighths, create.Status, create.SortOrder,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListScenes(ctx context.Context, find *store.FindScene) ([]*store.Scene, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Number; v != nil {
		where, args = append(where, "number = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, project_id, number, heading, synopsis, page_eighths, status, sort_order, created_ts, updated_ts
		 FROM scene WHERE %s ORDER BY sort_order, id`,
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

	var list []*store.Scene
	for rows.Next() {
		sc := &store.Scene{}
		if err := rows.Scan(&sc.ID, &sc.UID, &sc.ProjectID, &sc.Number, &sc.Heading, &sc.Synopsis,
			&sc.PageEighths, &sc.Status, &sc.SortOrder, &sc.CreatedTs, &sc.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

func (d *DB) UpdateScene(ctx context.Context, update *store.UpdateScene) (*store.Scene, error) {
	set, args := []string{}, []any{}
	if v := update.Number; v != nil {
		set, args = append(set, "number = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Heading; v != nil {
		set, args = append(set, "heading = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Synopsis; v != nil {
		set, args = append(set, "synopsis = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.PageEighths; v != nil {
		set, args = append(set, "page_eighths = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.SortOrder; v != nil {
		set, args = append(set, "sort_order = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return d.getScene(ctx, update.UID)
	}
	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE scene SET %s WHERE uid = %s", strings.Join(set, ", "), placeholder(len(args)))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getScene(ctx, update.UID)
}

func (d *DB) DeleteScene(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM scene WHERE uid = $1", uid)
	return err
}

func (d *DB) getScene(ctx context.Context, uid string) (*store.Scene, error) {
	list, err := d.ListScenes(ctx, &store.FindScene{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("scene %s not found", uid)
	}
	return list[0], nil
}

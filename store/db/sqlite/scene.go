package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateScene(ctx context.Context, create *store.Scene) (*store.Scene, error) {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO scene (uid, project_id, number, heading, synopsis, page_eighths, status, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		create.UID, create.ProjectID, create.Number, create.Heading, create.Synopsis,
		create.PageEighths, defaultString(create.Status, store.SceneStatusDraft), create.SortOrder,
	)
	if err != nil {
		return nil, err
	}
	return d.getScene(ctx, create.UID)
}

func (d *DB) ListScenes(ctx context.Context, find *store.FindScene) ([]*store.Scene, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.Number; v != nil {
		where, args = append(where, "number = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, *v)
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
		set, args = append(set, "number = ?"), append(args, *v)
	}
	if v := update.Heading; v != nil {
		set, args = append(set, "heading = ?"), append(args, *v)
	}
	if v := update.Synopsis; v != nil {
		set, args = append(set, "synopsis = ?"), append(args, *v)
	}
	if v := update.PageEighths; v != nil {
		set, args = append(set, "page_eighths = ?"), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = ?"), append(args, *v)
	}
	if v := update.SortOrder; v != nil {
		set, args = append(set, "sort_order = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return d.getScene(ctx, update.UID)
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE scene SET %s WHERE uid = ?", strings.Join(set, ", "))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getScene(ctx, update.UID)
}

func (d *DB) DeleteScene(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM scene WHERE uid = ?", uid)
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

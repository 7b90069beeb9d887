package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateShootingDay(ctx context.Context, create *store.ShootingDay) (*store.ShootingDay, error) {
	if create.Status == "" {
		create.Status = store.ShootingDayStatusPlanned
	}
	stmt := `INSERT INTO shooting_day (uid, project_id, day_number, shoot_date, status, notes)
	         VALUES ($1, $2, $3, $4, $5, $6)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.ProjectID, create.DayNumber, create.ShootDate, create.Status, create.Notes,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListShootingDays(ctx context.Context, find *store.FindShootingDay) ([]*store.ShootingDay, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DayNumber; v != nil {
		where, args = append(where, "day_number = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, project_id, day_number, shoot_date, status, notes, created_ts, updated_ts
		 FROM shooting_day WHERE %s ORDER BY day_number, id`,
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

	var list []*store.ShootingDay
	for rows.Next() {
		day := &store.ShootingDay{}
		if err := rows.Scan(&day.ID, &day.UID, &day.ProjectID, &day.DayNumber, &day.ShootDate,
			&day.Status, &day.Notes, &day.CreatedTs, &day.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, day)
	}
	return list, rows.Err()
}

func (d *DB) UpdateShootingDay(ctx context.Context, update *store.UpdateShootingDay) (*store.ShootingDay, error) {
	set, args := []string{}, []any{}
	if v := update.DayNumber; v != nil {
		set, args = append(set, "day_number = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ShootDate; v != nil {
		set, args = append(set, "shoot_date = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return d.getShootingDay(ctx, update.UID)
	}
	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE shooting_day SET %s WHERE uid = %s", strings.Join(set, ", "), placeholder(len(args)))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getShootingDay(ctx, update.UID)
}

func (d *DB) DeleteShootingDay(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM shooting_day WHERE uid = $1", uid)
	return err
}

func (d *DB) AssignSceneToDay(ctx context.Context, create *store.ShootingDayScene) (*store.ShootingDayScene, error) {
	stmt := `INSERT INTO shooting_day_scene (shooting_day_id, scene_id, sort_order) VALUES ($1, $2, $3)
	         ON CONFLICT (shooting_day_id, scene_id) DO UPDATE SET sort_order = EXCLUDED.sort_order
	         RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, create.ShootingDayID, create.SceneID, create.SortOrder).
		Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) UnassignSceneFromDay(ctx context.Context, shootingDayID, sceneID int32) error {
	_, err := d.db.ExecContext(ctx,
		"DELETE FROM shooting_day_scene WHERE shooting_day_id = $1 AND scene_id = $2",
		shootingDayID, sceneID,
	)
	return err
}

func (d *DB) ListShootingDayScenes(ctx context.Context, find *store.FindShootingDayScene) ([]*store.ShootingDayScene, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ShootingDayID; v != nil {
		where, args = append(where, "shooting_day_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SceneID; v != nil {
		where, args = append(where, "scene_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT id, shooting_day_id, scene_id, sort_order FROM shooting_day_scene WHERE %s ORDER BY sort_order, id",
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.ShootingDayScene
	for rows.Next() {
		link := &store.ShootingDayScene{}
		if err := rows.Scan(&link.ID, &link.ShootingDayID, &link.SceneID, &link.SortOrder); err != nil {
			return nil, err
		}
		list = append(list, link)
	}
	return list, rows.Err()
}

func (d *DB) getShootingDay(ctx context.Context, uid string) (*store.ShootingDay, error) {
	list, err := d.ListShootingDays(ctx, &store.FindShootingDay{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("shooting day %s not found", uid)
	}
	return list[0], nil
}

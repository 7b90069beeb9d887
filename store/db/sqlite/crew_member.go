package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateCrewMember(ctx context.Context, create *store.CrewMember) (*store.CrewMember, error) {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO crew_member (uid, project_id, name, role, department, email)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		create.UID, create.ProjectID, create.Name, create.Role, create.Department, create.Email,
	)
	if err != nil {
		return nil, err
	}
	return d.getCrewMember(ctx, create.UID)
}

func (d *DB) ListCrewMembers(ctx context.Context, find *store.FindCrewMember) ([]*store.CrewMember, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.Department; v != nil {
		where, args = append(where, "department = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, project_id, name, role, department, email, created_ts, updated_ts
		 FROM crew_member WHERE %s ORDER BY department, id`,
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

	var list []*store.CrewMember
	for rows.Next() {
		c := &store.CrewMember{}
		if err := rows.Scan(&c.ID, &c.UID, &c.ProjectID, &c.Name, &c.Role, &c.Department,
			&c.Email, &c.CreatedTs, &c.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (d *DB) UpdateCrewMember(ctx context.Context, update *store.UpdateCrewMember) (*store.CrewMember, error) {
	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "name = ?"), append(args, *v)
	}
	if v := update.Role; v != nil {
		set, args = append(set, "role = ?"), append(args, *v)
	}
	if v := update.Department; v != nil {
		set, args = append(set, "department = ?"), append(args, *v)
	}
	if v := update.Email; v != nil {
		set, args = append(set, "email = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return d.getCrewMember(ctx, update.UID)
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE crew_member SET %s WHERE uid = ?", strings.Join(set, ", "))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getCrewMember(ctx, update.UID)
}

func (d *DB) DeleteCrewMember(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM crew_member WHERE uid = ?", uid)
	return err
}

func (d *DB) getCrewMember(ctx context.Context, uid string) (*store.CrewMember, error) {
	list, err := d.ListCrewMembers(ctx, &store.FindCrewMember{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("crew member %s not found", uid)
	}
	return list[0], nil
}

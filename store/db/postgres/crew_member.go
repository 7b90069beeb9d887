package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateCrewMember(ctx context.Context, create *store.CrewMember) (*store.CrewMember, error) {
	stmt := `INSERT INTO crew_member (uid, project_id, name, role, department, email)
	         VALUES ($1, $2, $3, $4, $5, $6)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.ProjectID, create.Name, create.Role, create.Department, create.Email,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListCrewMembers(ctx context.Context, find *store.FindCrewMember) ([]*store.CrewMember, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ProjectID; v != nil {
		where, args = append(where, "project_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Department; v != nil {
		where, args = append(where, "department = "+placeholder(len(args)+1)), append(args, *v)
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
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Role; v != nil {
		set, args = append(set, "role = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Department; v != nil {
		set, args = append(set, "department = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Email; v != nil {
		set, args = append(set, "email = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return d.getCrewMember(ctx, update.UID)
	}
	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.UID)
	stmt := fmt.Sprintf("UPDATE crew_member SET %s WHERE uid = %s", strings.Join(set, ", "), placeholder(len(args)))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getCrewMember(ctx, update.UID)
}

func (d *DB) DeleteCrewMember(ctx context.Context, uid string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM crew_member WHERE uid = $1", uid)
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

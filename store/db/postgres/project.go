package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateProject(ctx context.Context, create *store.Project) (*store.Project, error) {
	if create.Status == "" {
		create.Status = "ACTIVE"
	}
	stmt := `INSERT INTO project (uid, creator_id, name, status) VALUES ($1, $2, $3, $4)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt, create.UID, create.CreatorID, create.Name, create.Status).
		Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListProjects(ctx context.Context, find *store.FindProject) ([]*store.Project, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "project.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "project.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	join := ""
	if v := find.MemberID; v != nil {
		join = "JOIN project_member ON project_member.project_id = project.id"
		where, args = append(where, "project_member.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT project.id, project.uid, project.creator_id, project.name, project.status, project.created_ts, project.updated_ts
		 FROM project %s WHERE %s ORDER BY project.id`,
		join, strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.Project
	for rows.Next() {
		p := &store.Project{}
		if err := rows.Scan(&p.ID, &p.UID, &p.CreatorID, &p.Name, &p.Status, &p.CreatedTs, &p.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (d *DB) UpsertProjectMember(ctx context.Context, upsert *store.ProjectMember) (*store.ProjectMember, error) {
	if upsert.Role == "" {
		upsert.Role = "MEMBER"
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO project_member (project_id, user_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		upsert.ProjectID, upsert.UserID, upsert.Role,
	)
	if err != nil {
		return nil, err
	}
	return d.GetProjectMember(ctx, upsert.ProjectID, upsert.UserID)
}

func (d *DB) GetProjectMember(ctx context.Context, projectID, userID int32) (*store.ProjectMember, error) {
	m := &store.ProjectMember{}
	err := d.db.QueryRowContext(ctx,
		"SELECT project_id, user_id, role, created_ts FROM project_member WHERE project_id = $1 AND user_id = $2",
		projectID, userID,
	).Scan(&m.ProjectID, &m.UserID, &m.Role, &m.CreatedTs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

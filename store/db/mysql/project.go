package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateProject(ctx context.Context, create *store.Project) (*store.Project, error) {
	result, err := d.db.ExecContext(ctx,
		"INSERT INTO `project` (`uid`, `creator_id`, `name`, `status`) VALUES (?, ?, ?, ?)",
		create.UID, create.CreatorID, create.Name, defaultString(create.Status, "ACTIVE"),
	)
	if err != nil {
		return nil, err
	}
	rawID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	id := int32(rawID)
	list, err := d.ListProjects(ctx, &store.FindProject{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("project %d not found after insert", id)
	}
	return list[0], nil
}

func (d *DB) ListProjects(ctx context.Context, find *store.FindProject) ([]*store.Project, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "`project`.`id` = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "`project`.`uid` = ?"), append(args, *v)
	}
	join := ""
	if v := find.MemberID; v != nil {
		join = "JOIN `project_member` ON `project_member`.`project_id` = `project`.`id`"
		where, args = append(where, "`project_member`.`user_id` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		"SELECT `project`.`id`, `project`.`uid`, `project`.`creator_id`, `project`.`name`, `project`.`status`, "+
			"UNIX_TIMESTAMP(`project`.`created_ts`), UNIX_TIMESTAMP(`project`.`updated_ts`) "+
			"FROM `project` %s WHERE %s ORDER BY `project`.`id`",
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
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO `project_member` (`project_id`, `user_id`, `role`) VALUES (?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE `role` = VALUES(`role`)",
		upsert.ProjectID, upsert.UserID, defaultString(upsert.Role, "MEMBER"),
	)
	if err != nil {
		return nil, err
	}
	return d.GetProjectMember(ctx, upsert.ProjectID, upsert.UserID)
}

func (d *DB) GetProjectMember(ctx context.Context, projectID, userID int32) (*store.ProjectMember, error) {
	m := &store.ProjectMember{}
	err := d.db.QueryRowContext(ctx,
		"SELECT `project_id`, `user_id`, `role`, UNIX_TIMESTAMP(`created_ts`) FROM `project_member` WHERE `project_id` = ? AND `user_id` = ?",
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

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

package postgres

import (
	"context"
	"fmt"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateAgentMessage(ctx context.Context, create *store.CreateAgentMessage) (*store.AgentMessage, error) {
	m := &store.AgentMessage{
		ProjectID: create.ProjectID,
		UserID:    create.UserID,
		Role:      create.Role,
		Content:   create.Content,
		Metadata:  create.Metadata,
	}
	stmt := `INSERT INTO agent_message (project_id, user_id, role, content, metadata)
	         VALUES ($1, $2, $3, $4, $5)
	         RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.ProjectID, create.UserID, create.Role, create.Content, create.Metadata,
	).Scan(&m.ID, &m.CreatedTs); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *DB) ListAgentMessages(ctx context.Context, find *store.FindAgentMessage) ([]*store.AgentMessage, error) {
	query := `SELECT id, project_id, user_id, role, content, metadata, created_ts
	          FROM agent_message WHERE project_id = $1 AND user_id = $2 ORDER BY id DESC`
	if v := find.Limit; v != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *v)
	}
	rows, err := d.db.QueryContext(ctx, query, find.ProjectID, find.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.AgentMessage
	for rows.Next() {
		m := &store.AgentMessage{}
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.Content, &m.Metadata, &m.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

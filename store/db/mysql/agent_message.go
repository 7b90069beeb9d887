package mysql

import (
	"context"
	"fmt"

	"github.com/showrunnerhq/showrunner/store"
)

func (d *DB) CreateAgentMessage(ctx context.Context, create *store.CreateAgentMessage) (*store.AgentMessage, error) {
	result, err := d.db.ExecContext(ctx,
		"INSERT INTO `agent_message` (`project_id`, `user_id`, `role`, `content`, `metadata`) VALUES (?, ?, ?, ?, ?)",
		create.ProjectID, create.UserID, create.Role, create.Content, create.Metadata,
	)
	if err != nil {
		return nil, err
	}
	rawID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	m := &store.AgentMessage{
		ID:        int32(rawID),
		ProjectID: create.ProjectID,
		UserID:    create.UserID,
		Role:      create.Role,
		Content:   create.Content,
		Metadata:  create.Metadata,
	}
	err = d.db.QueryRowContext(ctx, "SELECT UNIX_TIMESTAMP(`created_ts`) FROM `agent_message` WHERE `id` = ?", m.ID).Scan(&m.CreatedTs)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (d *DB) ListAgentMessages(ctx context.Context, find *store.FindAgentMessage) ([]*store.AgentMessage, error) {
	query := "SELECT `id`, `project_id`, `user_id`, `role`, `content`, `metadata`, UNIX_TIMESTAMP(`created_ts`) " +
		"FROM `agent_message` WHERE `project_id` = ? AND `user_id` = ? ORDER BY `id` DESC"
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

package store

import "context"

// CreateAgentMessage appends a message to the conversation.
func (s *Store) CreateAgentMessage(ctx context.Context, create *CreateAgentMessage) (*AgentMessage, error) {
	return s.driver.CreateAgentMessage(ctx, create)
}

// ListAgentMessages returns messages for a (project, user) pair, newest
// first, bounded by find.Limit when set.
func (s *Store) ListAgentMessages(ctx context.Context, find *FindAgentMessage) ([]*AgentMessage, error) {
	return s.driver.ListAgentMessages(ctx, find)
}

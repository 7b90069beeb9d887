package store

// Assistant conversation roles.
const (
	AgentMessageRoleUser      = "user"
	AgentMessageRoleAssistant = "assistant"
	AgentMessageRoleTool      = "tool"
)

// AgentMessage is a single turn in the assistant conversation for a
// (project, user) pair. Rows are append-only and never updated.
type AgentMessage struct {
	ID        int32
	ProjectID int32
	UserID    int32
	Role      string // "user" | "assistant" | "tool"
	Content   string
	Metadata  string // JSON string; confirmation and execution payloads
	CreatedTs int64
}

// FindAgentMessage filters for ListAgentMessages. Results are returned
// newest first; Limit bounds the window.
type FindAgentMessage struct {
	ProjectID int32
	UserID    int32
	Limit     *int
}

// CreateAgentMessage is the payload for CreateAgentMessage.
type CreateAgentMessage struct {
	ProjectID int32
	UserID    int32
	Role      string
	Content   string
	Metadata  string
}

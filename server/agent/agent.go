// Package agent implements the production assistant: a bounded tool-calling
// loop over the project database, with mutations held behind explicit user
// confirmation.
package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/showrunnerhq/showrunner/plugin/openrouter"
	"github.com/showrunnerhq/showrunner/plugin/vectorstore"
	"github.com/showrunnerhq/showrunner/store"
)

const (
	// maxIterations caps the tool-calling rounds per user message.
	maxIterations = 6
	// maxMessageLength caps a user message, in characters.
	maxMessageLength = 4000
	// historyWindow is how many stored messages are replayed to the model.
	historyWindow = 30
	// confirmationScanWindow is how far back a confirmation stays resolvable.
	confirmationScanWindow = 10
	// toolResultLimit truncates oversized tool output fed back to the model.
	toolResultLimit = 3000
)

var (
	// ErrInvalidInput marks a rejected user message.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfirmationNotFound marks a missing, stale, or already resolved confirmation.
	ErrConfirmationNotFound = errors.New("confirmation not found")
	// ErrSummarizationFailed marks an executed batch whose summary call failed.
	// The mutations stand; only the report is missing.
	ErrSummarizationFailed = errors.New("summarization failed")
)

// CompletionClient is the LLM surface the agent depends on.
type CompletionClient interface {
	Complete(ctx context.Context, messages []openrouter.ChatMessage, toolDefs []map[string]any) (*openrouter.Completion, error)
}

// Agent orchestrates assistant conversations for all projects.
type Agent struct {
	store *store.Store
	vs    *vectorstore.Store
	llm   CompletionClient
}

// New builds an agent. vs may be nil, which disables semantic scene search.
func New(s *store.Store, vs *vectorstore.Store, llm CompletionClient) *Agent {
	return &Agent{store: s, vs: vs, llm: llm}
}

// Reply is the outcome of one assistant turn.
type Reply struct {
	Message *store.AgentMessage
	// Confirmation is set when mutations are planned and awaiting approval.
	Confirmation *Confirmation
}

// HandleMessage runs one conversation turn. Read-only tool calls execute
// inline; any round containing a mutation is converted into a pending
// confirmation and returned without side effects.
func (a *Agent) HandleMessage(ctx context.Context, project *store.Project, userID int32, content string) (*Reply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.Wrap(ErrInvalidInput, "message is empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, errors.Wrapf(ErrInvalidInput, "message exceeds %d characters", maxMessageLength)
	}

	limit := historyWindow
	history, err := a.store.ListAgentMessages(ctx, &store.FindAgentMessage{
		ProjectID: project.ID,
		UserID:    userID,
		Limit:     &limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "load history")
	}

	if _, err := a.store.CreateAgentMessage(ctx, &store.CreateAgentMessage{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      store.AgentMessageRoleUser,
		Content:   content,
	}); err != nil {
		return nil, errors.Wrap(err, "persist user message")
	}

	// Fixed instructions and the per-request project snapshot are separate
	// system messages, so the snapshot can grow without touching the rules.
	messages := []openrouter.ChatMessage{
		{Role: "system", Content: buildSystemPrompt(time.Now())},
		{Role: "system", Content: "Current project snapshot:\n" + a.buildProjectContext(ctx, project)},
	}
	// History comes back newest first.
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if m.Role == store.AgentMessageRoleUser || m.Role == store.AgentMessageRoleAssistant {
			messages = append(messages, openrouter.ChatMessage{Role: m.Role, Content: m.Content})
		}
	}
	messages = append(messages, openrouter.ChatMessage{Role: "user", Content: content})

	ts := newToolset(a.store, a.vs, project.ID)
	toolDefs := ts.Definitions()

	slog.Info("agent turn", "project", project.UID, "user", userID, "tools", len(toolDefs))

	for round := 0; round < maxIterations; round++ {
		completion, err := a.llm.Complete(ctx, messages, toolDefs)
		if err != nil {
			return nil, errors.Wrap(err, "completion")
		}

		if len(completion.ToolCalls) == 0 {
			return a.persistAssistant(ctx, project.ID, userID, completion.Content, nil)
		}

		calls := dedupeCalls(completion.ToolCalls)

		if batchHasMutation(ts, calls) {
			conf := &Confirmation{ID: uuid.NewString(), ToolCalls: calls}
			for _, tc := range calls {
				tier := TierMutate
				if def, ok := ts.Lookup(tc.Function.Name); ok {
					tier = def.Tier
				}
				conf.Actions = append(conf.Actions, PlannedAction{
					Tool:        tc.Function.Name,
					Args:        tc.Function.Arguments,
					Tier:        tier,
					Description: describeAction(tc.Function.Name, tc.Function.Arguments),
				})
			}
			slog.Info("mutations planned", "confirmation", conf.ID, "actions", len(conf.Actions))
			reply, err := a.persistAssistant(ctx, project.ID, userID, confirmationPrompt(conf), &MessageMetadata{Confirmation: conf})
			if err != nil {
				return nil, err
			}
			reply.Confirmation = conf
			return reply, nil
		}

		// All reads: execute inline and loop.
		messages = append(messages, openrouter.ChatMessage{
			Role:      "assistant",
			Content:   completion.Content,
			ToolCalls: calls,
		})
		for _, tc := range calls {
			name := tc.Function.Name
			var result string
			if def, ok := ts.Lookup(name); ok {
				result, err = def.Handler.Call(ctx, tc.Function.Arguments)
				if err != nil {
					result = "Error: " + err.Error()
				}
			} else {
				result = "Unknown tool: " + name
			}
			result = truncate(result, toolResultLimit)
			slog.Info("tool call", "tool", name, "round", round)
			messages = append(messages, openrouter.ChatMessage{
				Role:       "tool",
				ToolCallID: tc.ID,
				Content:    result,
			})
		}
	}

	// Budget exhausted without a final answer.
	fallback := "I wasn't able to finish working through that request. Could you break it into smaller steps?"
	return a.persistAssistant(ctx, project.ID, userID, fallback, nil)
}

// ResolveConfirmation applies or discards a pending batch. The confirmation
// must still be within the scan window and not already resolved.
func (a *Agent) ResolveConfirmation(ctx context.Context, project *store.Project, userID int32, confirmationID string, approved bool) (*Reply, error) {
	conf, err := a.findConfirmation(ctx, project.ID, userID, confirmationID)
	if err != nil {
		return nil, err
	}

	if !approved {
		slog.Info("confirmation declined", "confirmation", confirmationID)
		return a.persistAssistant(ctx, project.ID, userID, "Okay, I won't make those changes.", &MessageMetadata{
			ResolvedConfirmationID: confirmationID,
			Approved:               boolPtr(false),
		})
	}

	ts := newToolset(a.store, a.vs, project.ID)
	results := a.executeActions(ctx, ts, project.ID, conf.Actions)
	slog.Info("confirmation executed", "confirmation", confirmationID, "actions", len(results))

	metadata := &MessageMetadata{
		ResolvedConfirmationID: confirmationID,
		Approved:               boolPtr(true),
		Results:                results,
	}

	summary, err := a.summarizeResults(ctx, results)
	if err != nil {
		// The mutations stand; record the raw results and surface the failure.
		fallback := "The approved changes were applied, but I couldn't produce a summary."
		if _, persistErr := a.persistAssistant(ctx, project.ID, userID, fallback, metadata); persistErr != nil {
			slog.Warn("failed to persist fallback summary", "err", persistErr)
		}
		return nil, errors.Wrap(ErrSummarizationFailed, err.Error())
	}
	return a.persistAssistant(ctx, project.ID, userID, summary, metadata)
}

func (a *Agent) summarizeResults(ctx context.Context, results []ActionResult) (string, error) {
	completion, err := a.llm.Complete(ctx, []openrouter.ChatMessage{
		{Role: "user", Content: summaryPrompt(results)},
	}, nil)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(completion.Content) == "" {
		return "", errors.New("empty summary")
	}
	return completion.Content, nil
}

func (a *Agent) persistAssistant(ctx context.Context, projectID, userID int32, content string, md *MessageMetadata) (*Reply, error) {
	msg, err := a.store.CreateAgentMessage(ctx, &store.CreateAgentMessage{
		ProjectID: projectID,
		UserID:    userID,
		Role:      store.AgentMessageRoleAssistant,
		Content:   content,
		Metadata:  encodeMetadata(md),
	})
	if err != nil {
		return nil, errors.Wrap(err, "persist assistant message")
	}
	return &Reply{Message: msg}, nil
}

// Some models repeat the same tool_call_id within one response.
func dedupeCalls(calls []openrouter.ToolCall) []openrouter.ToolCall {
	seen := make(map[string]bool, len(calls))
	out := make([]openrouter.ToolCall, 0, len(calls))
	for _, tc := range calls {
		if tc.ID != "" && seen[tc.ID] {
			continue
		}
		seen[tc.ID] = true
		out = append(out, tc)
	}
	return out
}

func batchHasMutation(ts *Toolset, calls []openrouter.ToolCall) bool {
	for _, tc := range calls {
		if def, ok := ts.Lookup(tc.Function.Name); ok && def.Tier == TierMutate {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back off to a rune boundary so the cut never splits a UTF-8 sequence.
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n[truncated]"
}

func boolPtr(v bool) *bool {
	return &v
}

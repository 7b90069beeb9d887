package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/plugin/openrouter"
	"github.com/showrunnerhq/showrunner/store"
	"github.com/showrunnerhq/showrunner/store/db/sqlite"
)

type fakeLLM struct {
	script   []*openrouter.Completion
	errs     []error
	calls    int
	requests [][]openrouter.ChatMessage
}

func (f *fakeLLM) Complete(_ context.Context, messages []openrouter.ChatMessage, _ []map[string]any) (*openrouter.Completion, error) {
	f.requests = append(f.requests, messages)
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	return f.script[i], nil
}

func textCompletion(content string) *openrouter.Completion {
	return &openrouter.Completion{Content: content}
}

func toolCompletion(calls ...openrouter.ToolCall) *openrouter.Completion {
	return &openrouter.Completion{ToolCalls: calls}
}

func call(id, name, args string) openrouter.ToolCall {
	return openrouter.ToolCall{
		ID:   id,
		Type: "function",
		Function: openrouter.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func newTestAgent(t *testing.T, llm CompletionClient) (*Agent, *store.Store, *store.Project, int32) {
	t.Helper()
	ctx := context.Background()

	driver, err := sqlite.NewDB(":memory:")
	require.NoError(t, err)
	st := store.New(driver)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { _ = st.Close() })

	user, err := st.CreateUser(ctx, &store.User{Username: "coordinator", PasswordHash: "x"})
	require.NoError(t, err)
	project, err := st.CreateProject(ctx, &store.Project{UID: "proj1", CreatorID: user.ID, Name: "Night Shift"})
	require.NoError(t, err)
	_, err = st.UpsertProjectMember(ctx, &store.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: "OWNER"})
	require.NoError(t, err)

	return New(st, nil, llm), st, project, user.ID
}

func TestHandleMessageRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{textCompletion("ok")}}
	ag, _, project, userID := newTestAgent(t, llm)

	_, err := ag.HandleMessage(ctx, project, userID, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ag.HandleMessage(ctx, project, userID, "   \n\t ")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ag.HandleMessage(ctx, project, userID, strings.Repeat("a", maxMessageLength+1))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, llm.calls)

	reply, err := ag.HandleMessage(ctx, project, userID, strings.Repeat("a", maxMessageLength))
	require.NoError(t, err)
	require.Equal(t, "ok", reply.Message.Content)
}

func TestHandleMessagePlainAnswer(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{textCompletion("Day 3 shoots the warehouse scenes.")}}
	ag, st, project, userID := newTestAgent(t, llm)

	reply, err := ag.HandleMessage(ctx, project, userID, "What shoots on day 3?")
	require.NoError(t, err)
	require.Nil(t, reply.Confirmation)
	require.Equal(t, "Day 3 shoots the warehouse scenes.", reply.Message.Content)
	require.Equal(t, store.AgentMessageRoleAssistant, reply.Message.Role)

	msgs, err := st.ListAgentMessages(ctx, &store.FindAgentMessage{ProjectID: project.ID, UserID: userID})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, store.AgentMessageRoleAssistant, msgs[0].Role)
	require.Equal(t, store.AgentMessageRoleUser, msgs[1].Role)
}

func TestHandleMessageReadToolLoop(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(call("c1", "list_scenes", "{}")),
		textCompletion("There are no scenes yet."),
	}}
	ag, _, project, userID := newTestAgent(t, llm)

	reply, err := ag.HandleMessage(ctx, project, userID, "List my scenes")
	require.NoError(t, err)
	require.Nil(t, reply.Confirmation)
	require.Equal(t, "There are no scenes yet.", reply.Message.Content)
	require.Equal(t, 2, llm.calls)

	// The second request must carry the tool result back to the model.
	second := llm.requests[1]
	last := second[len(second)-1]
	require.Equal(t, "tool", last.Role)
	require.Equal(t, "c1", last.ToolCallID)
	require.Contains(t, last.Content, "No scenes found")
}

func TestHandleMessageMutationPlansConfirmation(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(call("c1", "create_scene", `{"number":"12","heading":"INT. KITCHEN - DAY"}`)),
	}}
	ag, st, project, userID := newTestAgent(t, llm)

	reply, err := ag.HandleMessage(ctx, project, userID, "Add scene 12, interior kitchen day")
	require.NoError(t, err)
	require.NotNil(t, reply.Confirmation)
	require.NotEmpty(t, reply.Confirmation.ID)
	require.Len(t, reply.Confirmation.Actions, 1)
	require.Equal(t, "create_scene", reply.Confirmation.Actions[0].Tool)
	require.Equal(t, TierMutate, reply.Confirmation.Actions[0].Tier)
	require.Equal(t, "Create scene 12 - INT. KITCHEN - DAY", reply.Confirmation.Actions[0].Description)
	require.Contains(t, reply.Message.Content, "Create scene 12")

	// Nothing executed yet.
	scenes, err := st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Empty(t, scenes)

	// The confirmation rides on the persisted message, raw batch included.
	msgs, err := st.ListAgentMessages(ctx, &store.FindAgentMessage{ProjectID: project.ID, UserID: userID})
	require.NoError(t, err)
	md := decodeMetadata(msgs[0].Metadata)
	require.NotNil(t, md)
	require.NotNil(t, md.Confirmation)
	require.Equal(t, reply.Confirmation.ID, md.Confirmation.ID)
	require.Len(t, md.Confirmation.ToolCalls, 1)
	require.Equal(t, "c1", md.Confirmation.ToolCalls[0].ID)
	require.Equal(t, "create_scene", md.Confirmation.ToolCalls[0].Function.Name)
	require.JSONEq(t, `{"number":"12","heading":"INT. KITCHEN - DAY"}`, md.Confirmation.ToolCalls[0].Function.Arguments)
}

func TestHandleMessageMixedBatchPlansEverything(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(
			call("c1", "list_scenes", "{}"),
			call("c2", "create_cast_member", `{"name":"Ida Blank","character":"Mara"}`),
		),
	}}
	ag, st, project, userID := newTestAgent(t, llm)

	reply, err := ag.HandleMessage(ctx, project, userID, "Check scenes and add Ida as Mara")
	require.NoError(t, err)
	require.NotNil(t, reply.Confirmation)
	require.Len(t, reply.Confirmation.Actions, 2)
	require.Equal(t, TierRead, reply.Confirmation.Actions[0].Tier)
	require.Equal(t, TierMutate, reply.Confirmation.Actions[1].Tier)
	require.Equal(t, 1, llm.calls)

	cast, err := st.ListCastMembers(ctx, &store.FindCastMember{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Empty(t, cast)
}

func TestHandleMessageIterationBudgetExhausted(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(call("c1", "list_scenes", "{}")),
	}}
	ag, _, project, userID := newTestAgent(t, llm)

	reply, err := ag.HandleMessage(ctx, project, userID, "Keep looking")
	require.NoError(t, err)
	require.Nil(t, reply.Confirmation)
	require.Equal(t, maxIterations, llm.calls)
	require.Contains(t, reply.Message.Content, "wasn't able to finish")
}

func TestResolveConfirmationApprove(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(call("c1", "create_scene", `{"number":"12","heading":"INT. KITCHEN - DAY","synopsis":"Mara burns breakfast."}`)),
		textCompletion("Scene 12 was created."),
	}}
	ag, st, project, userID := newTestAgent(t, llm)

	planned, err := ag.HandleMessage(ctx, project, userID, "Add scene 12")
	require.NoError(t, err)
	require.NotNil(t, planned.Confirmation)

	reply, err := ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, true)
	require.NoError(t, err)
	require.Equal(t, "Scene 12 was created.", reply.Message.Content)

	scenes, err := st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	require.Equal(t, "INT. KITCHEN - DAY", scenes[0].Heading)

	md := decodeMetadata(reply.Message.Metadata)
	require.NotNil(t, md)
	require.Equal(t, planned.Confirmation.ID, md.ResolvedConfirmationID)
	require.Len(t, md.Results, 1)
	require.True(t, md.Results[0].Success)
	require.True(t, md.Results[0].Verified)

	// A resolved confirmation cannot be resolved again.
	_, err = ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, true)
	require.ErrorIs(t, err, ErrConfirmationNotFound)
	scenes, err = st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, scenes, 1)
}

func TestResolveConfirmationDecline(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(call("c1", "delete_scene", `{"uid":"nope"}`)),
	}}
	ag, st, project, userID := newTestAgent(t, llm)

	planned, err := ag.HandleMessage(ctx, project, userID, "Delete that scene")
	require.NoError(t, err)
	require.NotNil(t, planned.Confirmation)
	callsBefore := llm.calls

	reply, err := ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, false)
	require.NoError(t, err)
	require.Contains(t, reply.Message.Content, "won't make those changes")
	require.Equal(t, callsBefore, llm.calls)

	md := decodeMetadata(reply.Message.Metadata)
	require.NotNil(t, md)
	require.NotNil(t, md.Approved)
	require.False(t, *md.Approved)

	// Declining resolves the confirmation for good.
	_, err = ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, true)
	require.ErrorIs(t, err, ErrConfirmationNotFound)

	scenes, err := st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Empty(t, scenes)
}

func TestResolveConfirmationExecutesInOrderAndKeepsFailures(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{
		toolCompletion(
			call("c1", "create_scene", `{"number":"7","heading":"EXT. ALLEY - NIGHT"}`),
			call("c2", "update_scene", `{"uid":"missing","status":"APPROVED"}`),
		),
		textCompletion("One change applied, one failed."),
	}}
	ag, st, project, userID := newTestAgent(t, llm)

	planned, err := ag.HandleMessage(ctx, project, userID, "Add scene 7 and approve the missing one")
	require.NoError(t, err)
	require.Len(t, planned.Confirmation.Actions, 2)

	reply, err := ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, true)
	require.NoError(t, err)

	md := decodeMetadata(reply.Message.Metadata)
	require.Len(t, md.Results, 2)
	require.Equal(t, "create_scene", md.Results[0].Tool)
	require.True(t, md.Results[0].Success)
	require.Equal(t, "update_scene", md.Results[1].Tool)
	require.False(t, md.Results[1].Success)
	require.NotEmpty(t, md.Results[1].Error)

	// The failure did not roll back the earlier create.
	scenes, err := st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, scenes, 1)

	// The summary request lists both outcomes.
	summaryReq := llm.requests[len(llm.requests)-1]
	require.Len(t, summaryReq, 1)
	require.Contains(t, summaryReq[0].Content, "Create scene 7")
	require.Contains(t, summaryReq[0].Content, "FAILED")
}

func TestResolveConfirmationUnknownID(t *testing.T) {
	ctx := context.Background()
	ag, _, project, userID := newTestAgent(t, &fakeLLM{script: []*openrouter.Completion{textCompletion("ok")}})

	_, err := ag.ResolveConfirmation(ctx, project, userID, "no-such-confirmation", true)
	require.ErrorIs(t, err, ErrConfirmationNotFound)
}

func TestResolveConfirmationSummarizationFailure(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{
		script: []*openrouter.Completion{
			toolCompletion(call("c1", "create_location", `{"name":"Warehouse Pier 4"}`)),
			textCompletion("unused"),
		},
		errs: []error{nil, fmt.Errorf("upstream 502")},
	}
	ag, st, project, userID := newTestAgent(t, llm)

	planned, err := ag.HandleMessage(ctx, project, userID, "Add the warehouse location")
	require.NoError(t, err)

	_, err = ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, true)
	require.ErrorIs(t, err, ErrSummarizationFailed)

	// The mutation stands even though the summary failed.
	locations, err := st.ListLocations(ctx, &store.FindLocation{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, locations, 1)

	// And the batch is resolved; approving again is rejected.
	_, err = ag.ResolveConfirmation(ctx, project, userID, planned.Confirmation.ID, true)
	require.ErrorIs(t, err, ErrConfirmationNotFound)
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("a", 20)
	got := truncate(long, 10)
	require.Equal(t, strings.Repeat("a", 10)+"\n[truncated]", got)

	// A multi-byte rune straddling the limit is dropped whole, never split.
	multi := strings.Repeat("é", 20) // 2 bytes each
	got = truncate(multi, 5)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("é", 2)+"\n[truncated]", got)
}

func TestHandleMessageSystemPromptCarriesProjectSnapshot(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{script: []*openrouter.Completion{textCompletion("ok")}}
	ag, st, project, userID := newTestAgent(t, llm)

	_, err := st.CreateScene(ctx, &store.Scene{UID: "sc1", ProjectID: project.ID, Number: "1", Heading: "INT. OFFICE - DAY"})
	require.NoError(t, err)

	_, err = ag.HandleMessage(ctx, project, userID, "hello")
	require.NoError(t, err)

	// Two system messages: fixed instructions, then the snapshot.
	first := llm.requests[0]
	require.GreaterOrEqual(t, len(first), 3)
	require.Equal(t, "system", first[0].Role)
	require.Contains(t, first[0].Content, "CRITICAL INSTRUCTIONS")
	require.Equal(t, "system", first[1].Role)
	require.Contains(t, first[1].Content, "Night Shift")
	require.Contains(t, first[1].Content, "INT. OFFICE - DAY")
	require.NotContains(t, first[0].Content, "Night Shift")
}

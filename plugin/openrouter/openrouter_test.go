package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletePlainText(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Scene 12 is on day 3."}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "openai/gpt-4o-mini", WithBaseURL(srv.URL))
	completion, err := c.Complete(context.Background(), []ChatMessage{
		{Role: "system", Content: "You are a scheduler."},
		{Role: "user", Content: "Where is scene 12?"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Scene 12 is on day 3.", completion.Content)
	assert.Empty(t, completion.ToolCalls)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "openai/gpt-4o-mini", gotBody["model"])
	// No tools field when none are passed.
	_, hasTools := gotBody["tools"]
	assert.False(t, hasTools)
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
}

func TestCompleteToolCalls(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"",
			"tool_calls":[{"id":"call_1","type":"function","function":{"name":"list_scenes","arguments":"{}"}}]}}]}`))
	}))
	defer srv.Close()

	toolDefs := []map[string]any{
		{"type": "function", "function": map[string]any{"name": "list_scenes"}},
	}
	c := NewClient("k", "m", WithBaseURL(srv.URL))
	completion, err := c.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "scenes?"}}, toolDefs)
	require.NoError(t, err)
	require.Len(t, completion.ToolCalls, 1)
	assert.Equal(t, "call_1", completion.ToolCalls[0].ID)
	assert.Equal(t, "list_scenes", completion.ToolCalls[0].Function.Name)
	assert.Equal(t, "{}", completion.ToolCalls[0].Function.Arguments)

	tools, ok := gotBody["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
}

func TestCompleteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("k", "m", WithBaseURL(srv.URL))
	_, err := c.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()

	c = NewClient("k", "m", WithBaseURL(empty.URL))
	_, err = c.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

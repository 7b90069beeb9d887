package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/store"
)

func TestToolsetCatalog(t *testing.T) {
	_, st, project, _ := newTestAgent(t, &fakeLLM{})
	ts := newToolset(st, nil, project.ID)

	reads, mutates := 0, 0
	for _, def := range ts.defs {
		switch def.Tier {
		case TierRead:
			reads++
		case TierMutate:
			mutates++
		}
		require.NotNil(t, def.Handler, "tool %s has no handler", def.Name)
		require.NotEmpty(t, def.Description, "tool %s has no description", def.Name)
		require.NotNil(t, def.Required, "tool %s has nil required", def.Name)
	}
	assert.Equal(t, 8, reads)
	assert.Equal(t, 16, mutates)

	def, ok := ts.Lookup("create_scene")
	require.True(t, ok)
	assert.Equal(t, TierMutate, def.Tier)

	_, ok = ts.Lookup("drop_database")
	assert.False(t, ok)
}

func TestToolsetDefinitionsShape(t *testing.T) {
	_, st, project, _ := newTestAgent(t, &fakeLLM{})
	ts := newToolset(st, nil, project.ID)

	defs := ts.Definitions()
	require.Len(t, defs, len(ts.defs))
	for _, d := range defs {
		assert.Equal(t, "function", d["type"])
		fn, ok := d["function"].(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, fn["name"])
		params, ok := fn["parameters"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "object", params["type"])
	}
}

func TestReadTools(t *testing.T) {
	ctx := context.Background()
	_, st, project, _ := newTestAgent(t, &fakeLLM{})
	ts := newToolset(st, nil, project.ID)

	scene, err := st.CreateScene(ctx, &store.Scene{
		UID: "sc1", ProjectID: project.ID, Number: "12",
		Heading: "INT. KITCHEN - DAY", Synopsis: "Mara burns breakfast.", PageEighths: 5,
	})
	require.NoError(t, err)
	day, err := st.CreateShootingDay(ctx, &store.ShootingDay{UID: "day1", ProjectID: project.ID, DayNumber: 3, ShootDate: "2026-09-12"})
	require.NoError(t, err)
	_, err = st.AssignSceneToDay(ctx, &store.ShootingDayScene{ShootingDayID: day.ID, SceneID: scene.ID})
	require.NoError(t, err)

	listScenes, _ := ts.Lookup("list_scenes")
	out, err := listScenes.Handler.Call(ctx, "{}")
	require.NoError(t, err)
	assert.Contains(t, out, "Scene 12")
	assert.Contains(t, out, "INT. KITCHEN - DAY")
	assert.Contains(t, out, "Mara burns breakfast.")

	// Status filter excludes the DRAFT scene.
	out, err = listScenes.Handler.Call(ctx, `{"status":"LOCKED"}`)
	require.NoError(t, err)
	assert.Equal(t, "No scenes found.", out)

	schedule, _ := ts.Lookup("get_schedule")
	out, err = schedule.Handler.Call(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 3")
	assert.Contains(t, out, "on 2026-09-12")
	assert.Contains(t, out, "Scene 12 - INT. KITCHEN - DAY")

	listCast, _ := ts.Lookup("list_cast_members")
	out, err = listCast.Handler.Call(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "No cast members found.", out)

	// Semantic search degrades gracefully without a vector store.
	search, _ := ts.Lookup("search_scenes")
	out, err = search.Handler.Call(ctx, `{"query":"breakfast"}`)
	require.NoError(t, err)
	assert.Equal(t, "Semantic search is not available.", out)
}

func TestMutateToolHandlers(t *testing.T) {
	ctx := context.Background()
	_, st, project, _ := newTestAgent(t, &fakeLLM{})
	ts := newToolset(st, nil, project.ID)

	create, _ := ts.Lookup("create_scene")
	out, err := create.Handler.Call(ctx, `{"number":"7","heading":"EXT. ALLEY - NIGHT","synopsis":"The handoff.","page_eighths":3}`)
	require.NoError(t, err)
	assert.NotContains(t, out, "Error")

	scenes, err := st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	assert.Equal(t, int32(3), scenes[0].PageEighths)

	update, _ := ts.Lookup("update_scene")
	out, err = update.Handler.Call(ctx, `{"uid":"`+scenes[0].UID+`","status":"APPROVED"}`)
	require.NoError(t, err)
	assert.NotContains(t, out, "Error")
	got, err := st.GetScene(ctx, &store.FindScene{UID: &scenes[0].UID})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", got.Status)

	// Updating a scene from another project is rejected.
	out, err = update.Handler.Call(ctx, `{"uid":"not-in-project","status":"LOCKED"}`)
	require.NoError(t, err)
	assert.True(t, isToolError(out), "expected tool error, got %q", out)

	del, _ := ts.Lookup("delete_scene")
	out, err = del.Handler.Call(ctx, `{"uid":"`+scenes[0].UID+`"}`)
	require.NoError(t, err)
	assert.NotContains(t, out, "Error")
	got, err = st.GetScene(ctx, &store.FindScene{UID: &scenes[0].UID})
	require.NoError(t, err)
	assert.Nil(t, got)

	// Missing required fields surface as tool errors, not Go errors.
	out, err = create.Handler.Call(ctx, `{"heading":"INT. NOWHERE - DAY"}`)
	require.NoError(t, err)
	assert.True(t, isToolError(out), "expected tool error, got %q", out)
}

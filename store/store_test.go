package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/store"
	"github.com/showrunnerhq/showrunner/store/db/sqlite"
)

func newTestStore(t *testing.T) (*store.Store, *store.Project, *store.User) {
	t.Helper()
	ctx := context.Background()

	driver, err := sqlite.NewDB(":memory:")
	require.NoError(t, err)
	st := store.New(driver)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { _ = st.Close() })

	user, err := st.CreateUser(ctx, &store.User{Username: "upm", PasswordHash: "x"})
	require.NoError(t, err)
	project, err := st.CreateProject(ctx, &store.Project{UID: "proj1", CreatorID: user.ID, Name: "Night Shift"})
	require.NoError(t, err)
	return st, project, user
}

func TestSceneCRUD(t *testing.T) {
	ctx := context.Background()
	st, project, _ := newTestStore(t)

	scene, err := st.CreateScene(ctx, &store.Scene{
		UID:       "sc1",
		ProjectID: project.ID,
		Number:    "12",
		Heading:   "INT. KITCHEN - DAY",
		Synopsis:  "Mara burns breakfast.",
	})
	require.NoError(t, err)
	require.NotZero(t, scene.ID)
	assert.Equal(t, "DRAFT", scene.Status)
	assert.NotZero(t, scene.CreatedTs)

	got, err := st.GetScene(ctx, &store.FindScene{ProjectID: &project.ID, UID: &scene.UID})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INT. KITCHEN - DAY", got.Heading)

	heading := "INT. KITCHEN - NIGHT"
	status := "APPROVED"
	updated, err := st.UpdateScene(ctx, &store.UpdateScene{UID: scene.UID, Heading: &heading, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "INT. KITCHEN - NIGHT", updated.Heading)
	assert.Equal(t, "APPROVED", updated.Status)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Mara burns breakfast.", updated.Synopsis)

	require.NoError(t, st.DeleteScene(ctx, scene.UID))
	got, err = st.GetScene(ctx, &store.FindScene{UID: &scene.UID})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScenesScopedToProject(t *testing.T) {
	ctx := context.Background()
	st, project, user := newTestStore(t)

	other, err := st.CreateProject(ctx, &store.Project{UID: "proj2", CreatorID: user.ID, Name: "Other Show"})
	require.NoError(t, err)

	_, err = st.CreateScene(ctx, &store.Scene{UID: "sc1", ProjectID: project.ID, Number: "1", Heading: "INT. A - DAY"})
	require.NoError(t, err)
	_, err = st.CreateScene(ctx, &store.Scene{UID: "sc2", ProjectID: other.ID, Number: "1", Heading: "INT. B - DAY"})
	require.NoError(t, err)

	scenes, err := st.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	assert.Equal(t, "sc1", scenes[0].UID)
}

func TestShootingDayAssignment(t *testing.T) {
	ctx := context.Background()
	st, project, _ := newTestStore(t)

	scene, err := st.CreateScene(ctx, &store.Scene{UID: "sc1", ProjectID: project.ID, Number: "7", Heading: "EXT. ALLEY - NIGHT"})
	require.NoError(t, err)
	day, err := st.CreateShootingDay(ctx, &store.ShootingDay{UID: "day1", ProjectID: project.ID, DayNumber: 3, ShootDate: "2026-09-12"})
	require.NoError(t, err)

	link, err := st.AssignSceneToDay(ctx, &store.ShootingDayScene{ShootingDayID: day.ID, SceneID: scene.ID})
	require.NoError(t, err)
	require.NotNil(t, link)

	// Re-assigning the same scene is an upsert, not a duplicate.
	_, err = st.AssignSceneToDay(ctx, &store.ShootingDayScene{ShootingDayID: day.ID, SceneID: scene.ID})
	require.NoError(t, err)
	links, err := st.ListShootingDayScenes(ctx, &store.FindShootingDayScene{ShootingDayID: &day.ID})
	require.NoError(t, err)
	require.Len(t, links, 1)

	require.NoError(t, st.UnassignSceneFromDay(ctx, day.ID, scene.ID))
	links, err = st.ListShootingDayScenes(ctx, &store.FindShootingDayScene{ShootingDayID: &day.ID})
	require.NoError(t, err)
	assert.Empty(t, links)

	// Unassigning a scene that is not on the day is a no-op.
	require.NoError(t, st.UnassignSceneFromDay(ctx, day.ID, scene.ID))
}

func TestDeleteSceneDropsAssignments(t *testing.T) {
	ctx := context.Background()
	st, project, _ := newTestStore(t)

	scene, err := st.CreateScene(ctx, &store.Scene{UID: "sc1", ProjectID: project.ID, Number: "7", Heading: "EXT. ALLEY - NIGHT"})
	require.NoError(t, err)
	day, err := st.CreateShootingDay(ctx, &store.ShootingDay{UID: "day1", ProjectID: project.ID, DayNumber: 1})
	require.NoError(t, err)
	_, err = st.AssignSceneToDay(ctx, &store.ShootingDayScene{ShootingDayID: day.ID, SceneID: scene.ID})
	require.NoError(t, err)

	require.NoError(t, st.DeleteScene(ctx, scene.UID))

	links, err := st.ListShootingDayScenes(ctx, &store.FindShootingDayScene{ShootingDayID: &day.ID})
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestAgentMessagesNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	st, project, user := newTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := st.CreateAgentMessage(ctx, &store.CreateAgentMessage{
			ProjectID: project.ID,
			UserID:    user.ID,
			Role:      store.AgentMessageRoleUser,
			Content:   fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}

	msgs, err := st.ListAgentMessages(ctx, &store.FindAgentMessage{ProjectID: project.ID, UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.Equal(t, "message 5", msgs[0].Content)
	assert.Equal(t, "message 1", msgs[4].Content)

	limit := 2
	msgs, err = st.ListAgentMessages(ctx, &store.FindAgentMessage{ProjectID: project.ID, UserID: user.ID, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "message 5", msgs[0].Content)
	assert.Equal(t, "message 4", msgs[1].Content)
}

func TestAgentMessagesScopedToUser(t *testing.T) {
	ctx := context.Background()
	st, project, user := newTestStore(t)

	other, err := st.CreateUser(ctx, &store.User{Username: "producer", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = st.CreateAgentMessage(ctx, &store.CreateAgentMessage{
		ProjectID: project.ID, UserID: user.ID, Role: store.AgentMessageRoleUser, Content: "mine",
	})
	require.NoError(t, err)
	_, err = st.CreateAgentMessage(ctx, &store.CreateAgentMessage{
		ProjectID: project.ID, UserID: other.ID, Role: store.AgentMessageRoleUser, Content: "theirs",
	})
	require.NoError(t, err)

	msgs, err := st.ListAgentMessages(ctx, &store.FindAgentMessage{ProjectID: project.ID, UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "mine", msgs[0].Content)
}

func TestProjectMembership(t *testing.T) {
	ctx := context.Background()
	st, project, user := newTestStore(t)

	_, err := st.UpsertProjectMember(ctx, &store.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: "OWNER"})
	require.NoError(t, err)

	member, err := st.GetProjectMember(ctx, project.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "OWNER", member.Role)

	// Upsert overwrites the role.
	_, err = st.UpsertProjectMember(ctx, &store.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: "COORDINATOR"})
	require.NoError(t, err)
	member, err = st.GetProjectMember(ctx, project.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "COORDINATOR", member.Role)

	projects, err := st.ListProjects(ctx, &store.FindProject{MemberID: &user.ID})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.UID, projects[0].UID)

	missing, err := st.GetProjectMember(ctx, project.ID, user.ID+99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

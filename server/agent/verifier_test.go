package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/store"
)

func TestVerifyUpdateComparesFields(t *testing.T) {
	ctx := context.Background()
	ag, st, project, _ := newTestAgent(t, &fakeLLM{})

	cast, err := st.CreateCastMember(ctx, &store.CastMember{
		UID: "cm1", ProjectID: project.ID, Name: "Ida Blank", Character: "Mara", CastNumber: 4,
	})
	require.NoError(t, err)
	crew, err := st.CreateCrewMember(ctx, &store.CrewMember{
		UID: "cr1", ProjectID: project.ID, Name: "Sam Ortiz", Role: "Gaffer", Department: "Electric",
	})
	require.NoError(t, err)
	loc, err := st.CreateLocation(ctx, &store.Location{
		UID: "loc1", ProjectID: project.ID, Name: "Warehouse Pier 4", Address: "4 Pier Rd",
	})
	require.NoError(t, err)
	elem, err := st.CreateElement(ctx, &store.Element{
		UID: "el1", ProjectID: project.ID, Category: "PROP", Name: "Revolver", Quantity: 2,
	})
	require.NoError(t, err)
	day, err := st.CreateShootingDay(ctx, &store.ShootingDay{
		UID: "day1", ProjectID: project.ID, DayNumber: 3, ShootDate: "2026-09-12",
	})
	require.NoError(t, err)

	// Matching fields verify.
	tests := []struct {
		tool string
		args string
	}{
		{"update_cast_member", `{"uid":"` + cast.UID + `","character":"Mara","cast_number":4}`},
		{"update_crew_member", `{"uid":"` + crew.UID + `","role":"Gaffer","department":"Electric"}`},
		{"update_location", `{"uid":"` + loc.UID + `","address":"4 Pier Rd"}`},
		{"update_element", `{"uid":"` + elem.UID + `","quantity":2,"category":"PROP"}`},
		{"update_shooting_day", `{"uid":"` + day.UID + `","shoot_date":"2026-09-12","day_number":3}`},
	}
	for _, tc := range tests {
		ok, discrepancy := ag.verifyAction(ctx, project.ID, PlannedAction{Tool: tc.tool, Args: tc.args})
		assert.True(t, ok, "%s: %s", tc.tool, discrepancy)
	}

	// A requested value the row does not carry is a discrepancy, even
	// though the row exists.
	mismatches := []struct {
		tool string
		args string
		want string
	}{
		{"update_cast_member", `{"uid":"` + cast.UID + `","character":"Detective Voss"}`, "character mismatch after update"},
		{"update_cast_member", `{"uid":"` + cast.UID + `","cast_number":9}`, "cast_number mismatch after update"},
		{"update_crew_member", `{"uid":"` + crew.UID + `","department":"Camera"}`, "department mismatch after update"},
		{"update_location", `{"uid":"` + loc.UID + `","notes":"permit pending"}`, "notes mismatch after update"},
		{"update_element", `{"uid":"` + elem.UID + `","quantity":5}`, "quantity mismatch after update"},
		{"update_shooting_day", `{"uid":"` + day.UID + `","status":"SHOT"}`, "status mismatch after update"},
	}
	for _, tc := range mismatches {
		ok, discrepancy := ag.verifyAction(ctx, project.ID, PlannedAction{Tool: tc.tool, Args: tc.args})
		assert.False(t, ok, "%s should not verify", tc.tool)
		assert.Equal(t, tc.want, discrepancy)
	}

	// Updates against a missing row fail verification outright.
	ok, discrepancy := ag.verifyAction(ctx, project.ID, PlannedAction{
		Tool: "update_crew_member", Args: `{"uid":"ghost","role":"DIT"}`,
	})
	assert.False(t, ok)
	assert.Contains(t, discrepancy, "not found after update")
}

func TestVerifySceneUpdateChecksNumbers(t *testing.T) {
	ctx := context.Background()
	ag, st, project, _ := newTestAgent(t, &fakeLLM{})

	scene, err := st.CreateScene(ctx, &store.Scene{
		UID: "sc1", ProjectID: project.ID, Number: "12", Heading: "INT. KITCHEN - DAY", PageEighths: 5,
	})
	require.NoError(t, err)

	ok, discrepancy := ag.verifyAction(ctx, project.ID, PlannedAction{
		Tool: "update_scene", Args: `{"uid":"` + scene.UID + `","heading":"INT. KITCHEN - DAY","page_eighths":5}`,
	})
	assert.True(t, ok, discrepancy)

	ok, discrepancy = ag.verifyAction(ctx, project.ID, PlannedAction{
		Tool: "update_scene", Args: `{"uid":"` + scene.UID + `","page_eighths":7}`,
	})
	assert.False(t, ok)
	assert.Equal(t, "page_eighths mismatch after update", discrepancy)
}

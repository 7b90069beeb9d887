package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeAction(t *testing.T) {
	tests := []struct {
		tool string
		args string
		want string
	}{
		{"create_scene", `{"number":"14A","heading":"EXT. DOCKS - NIGHT"}`, "Create scene 14A - EXT. DOCKS - NIGHT"},
		{"update_scene", `{"uid":"sc1","heading":"INT. BAR - DAY","status":"LOCKED"}`, "Update scene sc1 (set heading, status)"},
		{"update_scene", `{"uid":"sc1"}`, "Update scene sc1 (no changes)"},
		{"delete_scene", `{"uid":"sc1"}`, "Delete scene sc1"},
		{"create_cast_member", `{"name":"Ida Blank","character":"Mara"}`, `Add cast member Ida Blank as "Mara"`},
		{"create_crew_member", `{"name":"Sam Ortiz","role":"Gaffer"}`, "Add crew member Sam Ortiz (Gaffer)"},
		{"create_location", `{"name":"Warehouse Pier 4"}`, "Add location Warehouse Pier 4"},
		{"create_element", `{"category":"PROP","name":"Revolver"}`, "Add prop Revolver"},
		{"create_shooting_day", `{"day_number":3,"shoot_date":"2026-09-12"}`, "Add shooting day 3 on 2026-09-12"},
		{"create_shooting_day", `{"day_number":3}`, "Add shooting day 3"},
		{"assign_scene_to_day", `{"scene_uid":"sc1","day_uid":"day1"}`, "Assign scene sc1 to day day1"},
		{"unassign_scene_from_day", `{"scene_uid":"sc1","day_uid":"day1"}`, "Unassign scene sc1 from day day1"},
		{"something_else", `{}`, "Run something_else"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, describeAction(tc.tool, tc.args), "tool %s", tc.tool)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	require.Empty(t, encodeMetadata(nil))
	require.Nil(t, decodeMetadata(""))
	require.Nil(t, decodeMetadata("not json"))

	md := &MessageMetadata{
		Confirmation: &Confirmation{
			ID: "conf-1",
			Actions: []PlannedAction{
				{Tool: "create_scene", Args: `{"number":"1"}`, Tier: TierMutate, Description: "Create scene 1 - "},
			},
		},
	}
	decoded := decodeMetadata(encodeMetadata(md))
	require.NotNil(t, decoded)
	require.NotNil(t, decoded.Confirmation)
	assert.Equal(t, "conf-1", decoded.Confirmation.ID)
	require.Len(t, decoded.Confirmation.Actions, 1)
	assert.Equal(t, TierMutate, decoded.Confirmation.Actions[0].Tier)
}

func TestConfirmationPrompt(t *testing.T) {
	one := &Confirmation{Actions: []PlannedAction{{Description: "Delete scene sc1"}}}
	assert.Equal(t, "I'd like to make the following change:\n1. Delete scene sc1\nShould I go ahead?", confirmationPrompt(one))

	two := &Confirmation{Actions: []PlannedAction{
		{Description: "Create scene 7 - EXT. ALLEY - NIGHT"},
		{Description: "Assign scene sc7 to day day2"},
	}}
	got := confirmationPrompt(two)
	assert.Contains(t, got, "following 2 changes")
	assert.Contains(t, got, "1. Create scene 7 - EXT. ALLEY - NIGHT\n")
	assert.Contains(t, got, "2. Assign scene sc7 to day day2\n")
}

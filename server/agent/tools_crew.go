package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type createCrewMemberTool struct {
	store     *store.Store
	projectID int32
}

func (t *createCrewMemberTool) Name() string { return "create_crew_member" }
func (t *createCrewMemberTool) Description() string {
	return "Add a crew member. Input must be a JSON string with keys `name` and `role`, optional `department` and `email`."
}
func (t *createCrewMemberTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Name       string `json:"name"`
		Role       string `json:"role"`
		Department string `json:"department"`
		Email      string `json:"email"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}
	if payload.Name == "" || payload.Role == "" {
		return "Error: `name` and `role` are required.", nil
	}

	c, err := t.store.CreateCrewMember(ctx, &store.CrewMember{
		UID:        shortuuid.New(),
		ProjectID:  t.projectID,
		Name:       payload.Name,
		Role:       payload.Role,
		Department: payload.Department,
		Email:      payload.Email,
	})
	if err != nil {
		return "Error adding crew member: " + err.Error(), nil
	}
	return fmt.Sprintf("Crew member %s (%s) added with UID: %s", c.Name, c.Role, c.UID), nil
}

type updateCrewMemberTool struct {
	store     *store.Store
	projectID int32
}

func (t *updateCrewMemberTool) Name() string { return "update_crew_member" }
func (t *updateCrewMemberTool) Description() string {
	return "Update a crew member. Input must be a JSON string with key `uid` plus the fields to change."
}
func (t *updateCrewMemberTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID        string  `json:"uid"`
		Name       *string `json:"name"`
		Role       *string `json:"role"`
		Department *string `json:"department"`
		Email      *string `json:"email"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetCrewMember(ctx, &store.FindCrewMember{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: crew member not found.", nil
	}

	c, err := t.store.UpdateCrewMember(ctx, &store.UpdateCrewMember{
		UID:        payload.UID,
		Name:       payload.Name,
		Role:       payload.Role,
		Department: payload.Department,
		Email:      payload.Email,
	})
	if err != nil {
		return "Error updating crew member: " + err.Error(), nil
	}
	return fmt.Sprintf("Crew member %s updated.", c.Name), nil
}

type deleteCrewMemberTool struct {
	store     *store.Store
	projectID int32
}

func (t *deleteCrewMemberTool) Name() string { return "delete_crew_member" }
func (t *deleteCrewMemberTool) Description() string {
	return "Remove a crew member. Input must be a JSON string with key `uid`."
}
func (t *deleteCrewMemberTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetCrewMember(ctx, &store.FindCrewMember{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: crew member not found.", nil
	}
	if err := t.store.DeleteCrewMember(ctx, payload.UID); err != nil {
		return "Error removing crew member: " + err.Error(), nil
	}
	return fmt.Sprintf("Crew member %s removed.", existing.Name), nil
}

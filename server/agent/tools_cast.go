package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type createCastMemberTool struct {
	store     *store.Store
	projectID int32
}

func (t *createCastMemberTool) Name() string { return "create_cast_member" }
func (t *createCastMemberTool) Description() string {
	return "Add a cast member. Input must be a JSON string with keys `name` and `character`, optional `cast_number`."
}
func (t *createCastMemberTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Name       string `json:"name"`
		Character  string `json:"character"`
		CastNumber int32  `json:"cast_number"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}
	if payload.Name == "" || payload.Character == "" {
		return "Error: `name` and `character` are required.", nil
	}

	c, err := t.store.CreateCastMember(ctx, &store.CastMember{
		UID:        shortuuid.New(),
		ProjectID:  t.projectID,
		Name:       payload.Name,
		Character:  payload.Character,
		CastNumber: payload.CastNumber,
	})
	if err != nil {
		return "Error adding cast member: " + err.Error(), nil
	}
	return fmt.Sprintf("Cast member %s (%s) added with UID: %s", c.Name, c.Character, c.UID), nil
}

type updateCastMemberTool struct {
	store     *store.Store
	projectID int32
}

func (t *updateCastMemberTool) Name() string { return "update_cast_member" }
func (t *updateCastMemberTool) Description() string {
	return "Update a cast member. Input must be a JSON string with key `uid` plus the fields to change."
}
func (t *updateCastMemberTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID        string  `json:"uid"`
		Name       *string `json:"name"`
		Character  *string `json:"character"`
		CastNumber *int32  `json:"cast_number"`
		Status     *string `json:"status"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetCastMember(ctx, &store.FindCastMember{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: cast member not found.", nil
	}

	c, err := t.store.UpdateCastMember(ctx, &store.UpdateCastMember{
		UID:        payload.UID,
		Name:       payload.Name,
		Character:  payload.Character,
		CastNumber: payload.CastNumber,
		Status:     payload.Status,
	})
	if err != nil {
		return "Error updating cast member: " + err.Error(), nil
	}
	return fmt.Sprintf("Cast member %s updated.", c.Name), nil
}

type deleteCastMemberTool struct {
	store     *store.Store
	projectID int32
}

func (t *deleteCastMemberTool) Name() string { return "delete_cast_member" }
func (t *deleteCastMemberTool) Description() string {
	return "Remove a cast member. Input must be a JSON string with key `uid`."
}
func (t *deleteCastMemberTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetCastMember(ctx, &store.FindCastMember{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: cast member not found.", nil
	}
	if err := t.store.DeleteCastMember(ctx, payload.UID); err != nil {
		return "Error removing cast member: " + err.Error(), nil
	}
	return fmt.Sprintf("Cast member %s removed.", existing.Name), nil
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type createLocationTool struct {
	store     *store.Store
	projectID int32
}

func (t *createLocationTool) Name() string { return "create_location" }
func (t *createLocationTool) Description() string {
	return "Add a shooting location. Input must be a JSON string with key `name`, optional `address` and `notes`."
}
func (t *createLocationTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Notes   string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}
	if payload.Name == "" {
		return "Error: `name` is required.", nil
	}

	l, err := t.store.CreateLocation(ctx, &store.Location{
		UID:       shortuuid.New(),
		ProjectID: t.projectID,
		Name:      payload.Name,
		Address:   payload.Address,
		Notes:     payload.Notes,
	})
	if err != nil {
		return "Error adding location: " + err.Error(), nil
	}
	return fmt.Sprintf("Location %s added with UID: %s", l.Name, l.UID), nil
}

type updateLocationTool struct {
	store     *store.Store
	projectID int32
}

func (t *updateLocationTool) Name() string { return "update_location" }
func (t *updateLocationTool) Description() string {
	return "Update a location. Input must be a JSON string with key `uid` plus the fields to change."
}
func (t *updateLocationTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID     string  `json:"uid"`
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetLocation(ctx, &store.FindLocation{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: location not found.", nil
	}

	l, err := t.store.UpdateLocation(ctx, &store.UpdateLocation{
		UID:     payload.UID,
		Name:    payload.Name,
		Address: payload.Address,
		Notes:   payload.Notes,
	})
	if err != nil {
		return "Error updating location: " + err.Error(), nil
	}
	return fmt.Sprintf("Location %s updated.", l.Name), nil
}

type deleteLocationTool struct {
	store     *store.Store
	projectID int32
}

func (t *deleteLocationTool) Name() string { return "delete_location" }
func (t *deleteLocationTool) Description() string {
	return "Remove a location. Input must be a JSON string with key `uid`."
}
func (t *deleteLocationTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetLocation(ctx, &store.FindLocation{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: location not found.", nil
	}
	if err := t.store.DeleteLocation(ctx, payload.UID); err != nil {
		return "Error removing location: " + err.Error(), nil
	}
	return fmt.Sprintf("Location %s removed.", existing.Name), nil
}

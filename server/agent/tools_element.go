package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type createElementTool struct {
	store     *store.Store
	projectID int32
}

func (t *createElementTool) Name() string { return "create_element" }
func (t *createElementTool) Description() string {
	return "Add a production element. Input must be a JSON string with keys `category` and `name`, optional `scene_uid` and `quantity`."
}
func (t *createElementTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Category string `json:"category"`
		Name     string `json:"name"`
		SceneUID string `json:"scene_uid"`
		Quantity int32  `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}
	if payload.Category == "" || payload.Name == "" {
		return "Error: `category` and `name` are required.", nil
	}
	if payload.SceneUID != "" {
		sc, err := t.store.GetScene(ctx, &store.FindScene{ProjectID: &t.projectID, UID: &payload.SceneUID})
		if err != nil || sc == nil {
			return "Error: scene not found.", nil
		}
	}

	e, err := t.store.CreateElement(ctx, &store.Element{
		UID:       shortuuid.New(),
		ProjectID: t.projectID,
		SceneUID:  payload.SceneUID,
		Category:  payload.Category,
		Name:      payload.Name,
		Quantity:  payload.Quantity,
	})
	if err != nil {
		return "Error adding element: " + err.Error(), nil
	}
	return fmt.Sprintf("%s %s added with UID: %s", e.Category, e.Name, e.UID), nil
}

type updateElementTool struct {
	store     *store.Store
	projectID int32
}

func (t *updateElementTool) Name() string { return "update_element" }
func (t *updateElementTool) Description() string {
	return "Update a production element. Input must be a JSON string with key `uid` plus the fields to change."
}
func (t *updateElementTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID      string  `json:"uid"`
		Category *string `json:"category"`
		Name     *string `json:"name"`
		SceneUID *string `json:"scene_uid"`
		Quantity *int32  `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetElement(ctx, &store.FindElement{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: element not found.", nil
	}

	e, err := t.store.UpdateElement(ctx, &store.UpdateElement{
		UID:      payload.UID,
		Category: payload.Category,
		Name:     payload.Name,
		SceneUID: payload.SceneUID,
		Quantity: payload.Quantity,
	})
	if err != nil {
		return "Error updating element: " + err.Error(), nil
	}
	return fmt.Sprintf("Element %s updated.", e.Name), nil
}

type deleteElementTool struct {
	store     *store.Store
	projectID int32
}

func (t *deleteElementTool) Name() string { return "delete_element" }
func (t *deleteElementTool) Description() string {
	return "Remove a production element. Input must be a JSON string with key `uid`."
}
func (t *deleteElementTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetElement(ctx, &store.FindElement{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: element not found.", nil
	}
	if err := t.store.DeleteElement(ctx, payload.UID); err != nil {
		return "Error removing element: " + err.Error(), nil
	}
	return fmt.Sprintf("Element %s removed.", existing.Name), nil
}

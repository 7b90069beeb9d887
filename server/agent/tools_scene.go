package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/plugin/vectorstore"
	"github.com/showrunnerhq/showrunner/store"
)

type createSceneTool struct {
	store     *store.Store
	vs        *vectorstore.Store
	projectID int32
}

func (t *createSceneTool) Name() string { return "create_scene" }
func (t *createSceneTool) Description() string {
	return "Create a new scene. Input must be a JSON string with keys `number` and `heading`, optional `synopsis` and `page_eighths`."
}
func (t *createSceneTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Number      string `json:"number"`
		Heading     string `json:"heading"`
		Synopsis    string `json:"synopsis"`
		PageEighths int32  `json:"page_eighths"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}
	if payload.Number == "" || payload.Heading == "" {
		return "Error: `number` and `heading` are required.", nil
	}

	uid := shortuuid.New()
	sc, err := t.store.CreateScene(ctx, &store.Scene{
		UID:         uid,
		ProjectID:   t.projectID,
		Number:      payload.Number,
		Heading:     payload.Heading,
		Synopsis:    payload.Synopsis,
		PageEighths: payload.PageEighths,
	})
	if err != nil {
		return "Error creating scene: " + err.Error(), nil
	}
	if t.vs != nil && sc.Synopsis != "" {
		if err := t.vs.UpsertScene(ctx, t.projectID, sc.UID, sc.Heading+" "+sc.Synopsis); err != nil {
			slog.Warn("failed to index scene", "uid", sc.UID, "err", err)
		}
	}
	return fmt.Sprintf("Scene %s created with UID: %s", sc.Number, sc.UID), nil
}

type updateSceneTool struct {
	store     *store.Store
	vs        *vectorstore.Store
	projectID int32
}

func (t *updateSceneTool) Name() string { return "update_scene" }
func (t *updateSceneTool) Description() string {
	return "Update an existing scene. Input must be a JSON string with key `uid` plus the fields to change."
}
func (t *updateSceneTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID         string  `json:"uid"`
		Number      *string `json:"number"`
		Heading     *string `json:"heading"`
		Synopsis    *string `json:"synopsis"`
		PageEighths *int32  `json:"page_eighths"`
		Status      *string `json:"status"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetScene(ctx, &store.FindScene{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: scene not found.", nil
	}

	sc, err := t.store.UpdateScene(ctx, &store.UpdateScene{
		UID:         payload.UID,
		Number:      payload.Number,
		Heading:     payload.Heading,
		Synopsis:    payload.Synopsis,
		PageEighths: payload.PageEighths,
		Status:      payload.Status,
	})
	if err != nil {
		return "Error updating scene: " + err.Error(), nil
	}
	if t.vs != nil && (payload.Heading != nil || payload.Synopsis != nil) {
		if err := t.vs.UpsertScene(ctx, t.projectID, sc.UID, sc.Heading+" "+sc.Synopsis); err != nil {
			slog.Warn("failed to reindex scene", "uid", sc.UID, "err", err)
		}
	}
	return fmt.Sprintf("Scene %s updated.", sc.Number), nil
}

type deleteSceneTool struct {
	store     *store.Store
	vs        *vectorstore.Store
	projectID int32
}

func (t *deleteSceneTool) Name() string { return "delete_scene" }
func (t *deleteSceneTool) Description() string {
	return "Permanently delete a scene. Input must be a JSON string with key `uid`."
}
func (t *deleteSceneTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetScene(ctx, &store.FindScene{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: scene not found.", nil
	}
	if err := t.store.DeleteScene(ctx, payload.UID); err != nil {
		return "Error deleting scene: " + err.Error(), nil
	}
	if t.vs != nil {
		if err := t.vs.RemoveScene(ctx, t.projectID, payload.UID); err != nil {
			slog.Warn("failed to deindex scene", "uid", payload.UID, "err", err)
		}
	}
	return fmt.Sprintf("Scene %s deleted.", existing.Number), nil
}

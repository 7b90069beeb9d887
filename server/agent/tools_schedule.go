package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type createShootingDayTool struct {
	store     *store.Store
	projectID int32
}

func (t *createShootingDayTool) Name() string { return "create_shooting_day" }
func (t *createShootingDayTool) Description() string {
	return "Add a shooting day. Input must be a JSON string with key `day_number`, optional `shoot_date` and `notes`."
}
func (t *createShootingDayTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		DayNumber int32  `json:"day_number"`
		ShootDate string `json:"shoot_date"`
		Notes     string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}
	if payload.DayNumber <= 0 {
		return "Error: `day_number` must be positive.", nil
	}

	day, err := t.store.CreateShootingDay(ctx, &store.ShootingDay{
		UID:       shortuuid.New(),
		ProjectID: t.projectID,
		DayNumber: payload.DayNumber,
		ShootDate: payload.ShootDate,
		Notes:     payload.Notes,
	})
	if err != nil {
		return "Error adding shooting day: " + err.Error(), nil
	}
	return fmt.Sprintf("Day %d added with UID: %s", day.DayNumber, day.UID), nil
}

type updateShootingDayTool struct {
	store     *store.Store
	projectID int32
}

func (t *updateShootingDayTool) Name() string { return "update_shooting_day" }
func (t *updateShootingDayTool) Description() string {
	return "Update a shooting day. Input must be a JSON string with key `uid` plus the fields to change."
}
func (t *updateShootingDayTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID       string  `json:"uid"`
		DayNumber *int32  `json:"day_number"`
		ShootDate *string `json:"shoot_date"`
		Status    *string `json:"status"`
		Notes     *string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: shooting day not found.", nil
	}

	day, err := t.store.UpdateShootingDay(ctx, &store.UpdateShootingDay{
		UID:       payload.UID,
		DayNumber: payload.DayNumber,
		ShootDate: payload.ShootDate,
		Status:    payload.Status,
		Notes:     payload.Notes,
	})
	if err != nil {
		return "Error updating shooting day: " + err.Error(), nil
	}
	return fmt.Sprintf("Day %d updated.", day.DayNumber), nil
}

type deleteShootingDayTool struct {
	store     *store.Store
	projectID int32
}

func (t *deleteShootingDayTool) Name() string { return "delete_shooting_day" }
func (t *deleteShootingDayTool) Description() string {
	return "Remove a shooting day. Input must be a JSON string with key `uid`."
}
func (t *deleteShootingDayTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	existing, err := t.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &t.projectID, UID: &payload.UID})
	if err != nil || existing == nil {
		return "Error: shooting day not found.", nil
	}
	if err := t.store.DeleteShootingDay(ctx, payload.UID); err != nil {
		return "Error removing shooting day: " + err.Error(), nil
	}
	return fmt.Sprintf("Day %d removed.", existing.DayNumber), nil
}

type assignSceneTool struct {
	store     *store.Store
	projectID int32
}

func (t *assignSceneTool) Name() string { return "assign_scene_to_day" }
func (t *assignSceneTool) Description() string {
	return "Put a scene on a shooting day. Input must be a JSON string with keys `scene_uid` and `day_uid`, optional `sort_order`."
}
func (t *assignSceneTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		SceneUID  string `json:"scene_uid"`
		DayUID    string `json:"day_uid"`
		SortOrder int32  `json:"sort_order"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	sc, err := t.store.GetScene(ctx, &store.FindScene{ProjectID: &t.projectID, UID: &payload.SceneUID})
	if err != nil || sc == nil {
		return "Error: scene not found.", nil
	}
	day, err := t.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &t.projectID, UID: &payload.DayUID})
	if err != nil || day == nil {
		return "Error: shooting day not found.", nil
	}

	if _, err := t.store.AssignSceneToDay(ctx, &store.ShootingDayScene{
		ShootingDayID: day.ID,
		SceneID:       sc.ID,
		SortOrder:     payload.SortOrder,
	}); err != nil {
		return "Error assigning scene: " + err.Error(), nil
	}
	return fmt.Sprintf("Scene %s assigned to day %d.", sc.Number, day.DayNumber), nil
}

type unassignSceneTool struct {
	store     *store.Store
	projectID int32
}

func (t *unassignSceneTool) Name() string { return "unassign_scene_from_day" }
func (t *unassignSceneTool) Description() string {
	return "Take a scene off a shooting day. Input must be a JSON string with keys `scene_uid` and `day_uid`."
}
func (t *unassignSceneTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		SceneUID string `json:"scene_uid"`
		DayUID   string `json:"day_uid"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return "Error: failed to parse input JSON.", nil
	}

	sc, err := t.store.GetScene(ctx, &store.FindScene{ProjectID: &t.projectID, UID: &payload.SceneUID})
	if err != nil || sc == nil {
		return "Error: scene not found.", nil
	}
	day, err := t.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &t.projectID, UID: &payload.DayUID})
	if err != nil || day == nil {
		return "Error: shooting day not found.", nil
	}

	if err := t.store.UnassignSceneFromDay(ctx, day.ID, sc.ID); err != nil {
		return "Error unassigning scene: " + err.Error(), nil
	}
	return fmt.Sprintf("Scene %s removed from day %d.", sc.Number, day.DayNumber), nil
}

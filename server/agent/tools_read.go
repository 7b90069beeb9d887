package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/plugin/vectorstore"
	"github.com/showrunnerhq/showrunner/store"
)

type listScenesTool struct {
	store     *store.Store
	projectID int32
}

func (t *listScenesTool) Name() string { return "list_scenes" }
func (t *listScenesTool) Description() string {
	return "List scenes in the project. Input may be a JSON string with optional key `status`."
}
func (t *listScenesTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal([]byte(input), &payload)
	find := &store.FindScene{ProjectID: &t.projectID}
	if payload.Status != "" {
		find.Status = &payload.Status
	}
	scenes, err := t.store.ListScenes(ctx, find)
	if err != nil {
		return "", err
	}
	if len(scenes) == 0 {
		return "No scenes found.", nil
	}
	var sb strings.Builder
	for _, sc := range scenes {
		sb.WriteString(fmt.Sprintf("Scene %s [%s] %s (%d/8 pages, %s)", sc.Number, sc.UID, sc.Heading, sc.PageEighths, sc.Status))
		if sc.Synopsis != "" {
			sb.WriteString(" - " + sc.Synopsis)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type searchScenesTool struct {
	vs        *vectorstore.Store
	projectID int32
}

func (t *searchScenesTool) Name() string { return "search_scenes" }
func (t *searchScenesTool) Description() string {
	return "Search scene synopses semantically. Input should be a JSON string with key `query`."
}
func (t *searchScenesTool) Call(ctx context.Context, input string) (string, error) {
	if t.vs == nil {
		return "Semantic search is not available.", nil
	}
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil || payload.Query == "" {
		payload.Query = input
	}
	results, err := t.vs.SearchSimilar(ctx, t.projectID, payload.Query, 5)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "No matching scenes found.", nil
	}
	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("[%d] Scene %s (score %.2f): %s\n", i+1, r.SceneUID, r.Score, r.Content))
	}
	return sb.String(), nil
}

type listCastMembersTool struct {
	store     *store.Store
	projectID int32
}

func (t *listCastMembersTool) Name() string { return "list_cast_members" }
func (t *listCastMembersTool) Description() string {
	return "List the project's cast members. No input required."
}
func (t *listCastMembersTool) Call(ctx context.Context, _ string) (string, error) {
	cast, err := t.store.ListCastMembers(ctx, &store.FindCastMember{ProjectID: &t.projectID})
	if err != nil {
		return "", err
	}
	if len(cast) == 0 {
		return "No cast members found.", nil
	}
	var sb strings.Builder
	for _, c := range cast {
		sb.WriteString(fmt.Sprintf("#%d %s as %q [%s] (%s)\n", c.CastNumber, c.Name, c.Character, c.UID, c.Status))
	}
	return sb.String(), nil
}

type listCrewMembersTool struct {
	store     *store.Store
	projectID int32
}

func (t *listCrewMembersTool) Name() string { return "list_crew_members" }
func (t *listCrewMembersTool) Description() string {
	return "List the project's crew. Input may be a JSON string with optional key `department`."
}
func (t *listCrewMembersTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		Department string `json:"department"`
	}
	_ = json.Unmarshal([]byte(input), &payload)
	find := &store.FindCrewMember{ProjectID: &t.projectID}
	if payload.Department != "" {
		find.Department = &payload.Department
	}
	crew, err := t.store.ListCrewMembers(ctx, find)
	if err != nil {
		return "", err
	}
	if len(crew) == 0 {
		return "No crew members found.", nil
	}
	var sb strings.Builder
	for _, c := range crew {
		sb.WriteString(fmt.Sprintf("%s - %s, %s [%s]", c.Name, c.Role, c.Department, c.UID))
		if c.Email != "" {
			sb.WriteString(" <" + c.Email + ">")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type listLocationsTool struct {
	store     *store.Store
	projectID int32
}

func (t *listLocationsTool) Name() string { return "list_locations" }
func (t *listLocationsTool) Description() string {
	return "List the project's shooting locations. No input required."
}
func (t *listLocationsTool) Call(ctx context.Context, _ string) (string, error) {
	locations, err := t.store.ListLocations(ctx, &store.FindLocation{ProjectID: &t.projectID})
	if err != nil {
		return "", err
	}
	if len(locations) == 0 {
		return "No locations found.", nil
	}
	var sb strings.Builder
	for _, l := range locations {
		sb.WriteString(fmt.Sprintf("%s [%s]", l.Name, l.UID))
		if l.Address != "" {
			sb.WriteString(" - " + l.Address)
		}
		if l.Notes != "" {
			sb.WriteString(" (" + l.Notes + ")")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type listElementsTool struct {
	store     *store.Store
	projectID int32
}

func (t *listElementsTool) Name() string { return "list_elements" }
func (t *listElementsTool) Description() string {
	return "List production elements. Input may be a JSON string with optional keys `scene_uid` and `category`."
}
func (t *listElementsTool) Call(ctx context.Context, input string) (string, error) {
	var payload struct {
		SceneUID string `json:"scene_uid"`
		Category string `json:"category"`
	}
	_ = json.Unmarshal([]byte(input), &payload)
	find := &store.FindElement{ProjectID: &t.projectID}
	if payload.SceneUID != "" {
		find.SceneUID = &payload.SceneUID
	}
	if payload.Category != "" {
		find.Category = &payload.Category
	}
	elements, err := t.store.ListElements(ctx, find)
	if err != nil {
		return "", err
	}
	if len(elements) == 0 {
		return "No elements found.", nil
	}
	var sb strings.Builder
	for _, e := range elements {
		sb.WriteString(fmt.Sprintf("[%s] %s: %s x%d", e.UID, e.Category, e.Name, e.Quantity))
		if e.SceneUID != "" {
			sb.WriteString(" (scene " + e.SceneUID + ")")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type listShootingDaysTool struct {
	store     *store.Store
	projectID int32
}

func (t *listShootingDaysTool) Name() string { return "list_shooting_days" }
func (t *listShootingDaysTool) Description() string {
	return "List the project's shooting days. No input required."
}
func (t *listShootingDaysTool) Call(ctx context.Context, _ string) (string, error) {
	days, err := t.store.ListShootingDays(ctx, &store.FindShootingDay{ProjectID: &t.projectID})
	if err != nil {
		return "", err
	}
	if len(days) == 0 {
		return "No shooting days found.", nil
	}
	var sb strings.Builder
	for _, day := range days {
		sb.WriteString(formatShootingDay(day))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type getScheduleTool struct {
	store     *store.Store
	projectID int32
}

func (t *getScheduleTool) Name() string { return "get_schedule" }
func (t *getScheduleTool) Description() string {
	return "Get the full shooting schedule with scenes per day. No input required."
}
func (t *getScheduleTool) Call(ctx context.Context, _ string) (string, error) {
	days, err := t.store.ListShootingDays(ctx, &store.FindShootingDay{ProjectID: &t.projectID})
	if err != nil {
		return "", err
	}
	if len(days) == 0 {
		return "The schedule is empty.", nil
	}

	scenes, err := t.store.ListScenes(ctx, &store.FindScene{ProjectID: &t.projectID})
	if err != nil {
		return "", err
	}
	sceneByID := make(map[int32]*store.Scene, len(scenes))
	for _, sc := range scenes {
		sceneByID[sc.ID] = sc
	}

	var sb strings.Builder
	for _, day := range days {
		sb.WriteString(formatShootingDay(day))
		sb.WriteString("\n")
		links, err := t.store.ListShootingDayScenes(ctx, &store.FindShootingDayScene{ShootingDayID: &day.ID})
		if err != nil {
			return "", err
		}
		if len(links) == 0 {
			sb.WriteString("  (no scenes assigned)\n")
			continue
		}
		for _, link := range links {
			sc, ok := sceneByID[link.SceneID]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("  Scene %s - %s (%d/8 pages)\n", sc.Number, sc.Heading, sc.PageEighths))
		}
	}
	return sb.String(), nil
}

func formatShootingDay(day *store.ShootingDay) string {
	s := fmt.Sprintf("Day %d [%s] (%s)", day.DayNumber, day.UID, day.Status)
	if day.ShootDate != "" {
		s += " on " + day.ShootDate
	}
	if day.Notes != "" {
		s += " - " + day.Notes
	}
	return s
}

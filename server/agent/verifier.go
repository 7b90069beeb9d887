package agent

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

// verifyAction re-reads the store after a mutation and checks that the
// change actually landed. It answers with a verified flag and, when the
// check fails, a short discrepancy description. Creates and deletes are
// checked by presence; updates compare the requested fields against the
// re-read row.
func (a *Agent) verifyAction(ctx context.Context, projectID int32, action PlannedAction) (bool, string) {
	fields := map[string]any{}
	_ = json.Unmarshal([]byte(action.Args), &fields)
	str := func(key string) string {
		v, _ := fields[key].(string)
		return v
	}

	switch action.Tool {
	case "create_scene":
		number := str("number")
		scenes, err := a.store.ListScenes(ctx, &store.FindScene{ProjectID: &projectID, Number: &number})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if len(scenes) == 0 {
			return false, "scene " + number + " not found after create"
		}
		return true, ""
	case "update_scene":
		sc, err := a.store.GetScene(ctx, &store.FindScene{ProjectID: &projectID, UID: strPtr(str("uid"))})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if sc == nil {
			return false, "scene " + str("uid") + " not found after update"
		}
		return fieldsMatch(fields,
			map[string]string{"number": sc.Number, "heading": sc.Heading, "synopsis": sc.Synopsis, "status": sc.Status},
			map[string]int32{"page_eighths": sc.PageEighths})
	case "delete_scene":
		uid := str("uid")
		sc, err := a.store.GetScene(ctx, &store.FindScene{ProjectID: &projectID, UID: &uid})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if sc != nil {
			return false, "scene " + uid + " still present after delete"
		}
		return true, ""
	case "update_cast_member":
		c, err := a.store.GetCastMember(ctx, &store.FindCastMember{ProjectID: &projectID, UID: strPtr(str("uid"))})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if c == nil {
			return false, "cast member " + str("uid") + " not found after update"
		}
		return fieldsMatch(fields,
			map[string]string{"name": c.Name, "character": c.Character, "status": c.Status},
			map[string]int32{"cast_number": c.CastNumber})
	case "create_cast_member", "delete_cast_member":
		return a.verifyExistence(action.Tool, func() (bool, error) {
			if uid := str("uid"); uid != "" {
				c, err := a.store.GetCastMember(ctx, &store.FindCastMember{ProjectID: &projectID, UID: &uid})
				return c != nil, err
			}
			list, err := a.store.ListCastMembers(ctx, &store.FindCastMember{ProjectID: &projectID})
			for _, c := range list {
				if c.Name == str("name") && c.Character == str("character") {
					return true, err
				}
			}
			return false, err
		})
	case "update_crew_member":
		c, err := a.store.GetCrewMember(ctx, &store.FindCrewMember{ProjectID: &projectID, UID: strPtr(str("uid"))})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if c == nil {
			return false, "crew member " + str("uid") + " not found after update"
		}
		return fieldsMatch(fields,
			map[string]string{"name": c.Name, "role": c.Role, "department": c.Department, "email": c.Email}, nil)
	case "create_crew_member", "delete_crew_member":
		return a.verifyExistence(action.Tool, func() (bool, error) {
			if uid := str("uid"); uid != "" {
				c, err := a.store.GetCrewMember(ctx, &store.FindCrewMember{ProjectID: &projectID, UID: &uid})
				return c != nil, err
			}
			list, err := a.store.ListCrewMembers(ctx, &store.FindCrewMember{ProjectID: &projectID})
			for _, c := range list {
				if c.Name == str("name") && c.Role == str("role") {
					return true, err
				}
			}
			return false, err
		})
	case "update_location":
		l, err := a.store.GetLocation(ctx, &store.FindLocation{ProjectID: &projectID, UID: strPtr(str("uid"))})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if l == nil {
			return false, "location " + str("uid") + " not found after update"
		}
		return fieldsMatch(fields,
			map[string]string{"name": l.Name, "address": l.Address, "notes": l.Notes}, nil)
	case "create_location", "delete_location":
		return a.verifyExistence(action.Tool, func() (bool, error) {
			if uid := str("uid"); uid != "" {
				l, err := a.store.GetLocation(ctx, &store.FindLocation{ProjectID: &projectID, UID: &uid})
				return l != nil, err
			}
			list, err := a.store.ListLocations(ctx, &store.FindLocation{ProjectID: &projectID})
			for _, l := range list {
				if l.Name == str("name") {
					return true, err
				}
			}
			return false, err
		})
	case "update_element":
		e, err := a.store.GetElement(ctx, &store.FindElement{ProjectID: &projectID, UID: strPtr(str("uid"))})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if e == nil {
			return false, "element " + str("uid") + " not found after update"
		}
		return fieldsMatch(fields,
			map[string]string{"category": e.Category, "name": e.Name, "scene_uid": e.SceneUID},
			map[string]int32{"quantity": e.Quantity})
	case "create_element", "delete_element":
		return a.verifyExistence(action.Tool, func() (bool, error) {
			if uid := str("uid"); uid != "" {
				e, err := a.store.GetElement(ctx, &store.FindElement{ProjectID: &projectID, UID: &uid})
				return e != nil, err
			}
			list, err := a.store.ListElements(ctx, &store.FindElement{ProjectID: &projectID})
			for _, e := range list {
				if e.Name == str("name") && e.Category == str("category") {
					return true, err
				}
			}
			return false, err
		})
	case "update_shooting_day":
		day, err := a.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &projectID, UID: strPtr(str("uid"))})
		if err != nil {
			return false, "verification query failed: " + err.Error()
		}
		if day == nil {
			return false, "shooting day " + str("uid") + " not found after update"
		}
		return fieldsMatch(fields,
			map[string]string{"shoot_date": day.ShootDate, "status": day.Status, "notes": day.Notes},
			map[string]int32{"day_number": day.DayNumber})
	case "create_shooting_day", "delete_shooting_day":
		return a.verifyExistence(action.Tool, func() (bool, error) {
			if uid := str("uid"); uid != "" {
				day, err := a.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &projectID, UID: &uid})
				return day != nil, err
			}
			dayNumber, _ := fields["day_number"].(float64)
			n := int32(dayNumber)
			list, err := a.store.ListShootingDays(ctx, &store.FindShootingDay{ProjectID: &projectID, DayNumber: &n})
			return len(list) > 0, err
		})
	case "assign_scene_to_day", "unassign_scene_from_day":
		return a.verifyAssignment(ctx, projectID, action.Tool, str("scene_uid"), str("day_uid"))
	default:
		// Nothing to check for unknown tools.
		return true, ""
	}
}

// verifyExistence handles creates and deletes: the row must exist after
// create and be gone after delete.
func (a *Agent) verifyExistence(tool string, lookup func() (bool, error)) (bool, string) {
	exists, err := lookup()
	if err != nil {
		return false, "verification query failed: " + err.Error()
	}
	isDelete := strings.HasPrefix(tool, "delete_")
	if isDelete && exists {
		return false, "record still present after " + tool
	}
	if !isDelete && !exists {
		return false, "record not found after " + tool
	}
	return true, ""
}

// fieldsMatch compares the keys requested in the tool args against the
// re-read row. Keys absent from the args are not checked. JSON numbers
// decode as float64, hence the separate int map.
func fieldsMatch(fields map[string]any, strs map[string]string, ints map[string]int32) (bool, string) {
	keys := make([]string, 0, len(strs)+len(ints))
	for k := range strs {
		keys = append(keys, k)
	}
	for k := range ints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if got, ok := strs[k]; ok {
			if v, present := fields[k].(string); present && got != v {
				return false, k + " mismatch after update"
			}
			continue
		}
		if v, present := fields[k].(float64); present && ints[k] != int32(v) {
			return false, k + " mismatch after update"
		}
	}
	return true, ""
}

func (a *Agent) verifyAssignment(ctx context.Context, projectID int32, tool, sceneUID, dayUID string) (bool, string) {
	sc, err := a.store.GetScene(ctx, &store.FindScene{ProjectID: &projectID, UID: &sceneUID})
	if err != nil || sc == nil {
		return false, "scene " + sceneUID + " not found during verification"
	}
	day, err := a.store.GetShootingDay(ctx, &store.FindShootingDay{ProjectID: &projectID, UID: &dayUID})
	if err != nil || day == nil {
		return false, "shooting day " + dayUID + " not found during verification"
	}
	links, err := a.store.ListShootingDayScenes(ctx, &store.FindShootingDayScene{
		ShootingDayID: &day.ID,
		SceneID:       &sc.ID,
	})
	if err != nil {
		return false, "verification query failed: " + err.Error()
	}
	assigned := len(links) > 0
	if tool == "assign_scene_to_day" && !assigned {
		return false, "assignment missing after assign"
	}
	if tool == "unassign_scene_from_day" && assigned {
		return false, "assignment still present after unassign"
	}
	return true, ""
}

func strPtr(s string) *string {
	return &s
}

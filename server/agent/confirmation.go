package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/showrunnerhq/showrunner/plugin/openrouter"
	"github.com/showrunnerhq/showrunner/store"
)

// Confirmation is a batch of planned mutations awaiting the user's decision.
// ToolCalls keeps the model's raw batch alongside the planned actions so the
// original call ids survive persistence and can be replayed into context.
type Confirmation struct {
	ID        string                `json:"id"`
	Actions   []PlannedAction       `json:"actions"`
	ToolCalls []openrouter.ToolCall `json:"toolCalls,omitempty"`
}

// PlannedAction is a single deferred tool invocation.
type PlannedAction struct {
	Tool        string `json:"tool"`
	Args        string `json:"args"`
	Tier        Tier   `json:"tier"`
	Description string `json:"description"`
}

// ActionResult records one executed action and its verification outcome.
type ActionResult struct {
	Tool        string `json:"tool"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
	Output      string `json:"output,omitempty"`
	Error       string `json:"error,omitempty"`
	Verified    bool   `json:"verified"`
	Discrepancy string `json:"discrepancy,omitempty"`
}

// MessageMetadata is the JSON payload stored alongside assistant messages.
// A message either carries a pending Confirmation or resolves one; the
// current pending confirmation is always derived by scanning recent
// messages, never from mutable state.
type MessageMetadata struct {
	Confirmation           *Confirmation  `json:"confirmation,omitempty"`
	ResolvedConfirmationID string         `json:"resolvedConfirmationId,omitempty"`
	Approved               *bool          `json:"approved,omitempty"`
	Results                []ActionResult `json:"results,omitempty"`
}

func encodeMetadata(md *MessageMetadata) string {
	if md == nil {
		return ""
	}
	raw, err := json.Marshal(md)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeMetadata(raw string) *MessageMetadata {
	if raw == "" {
		return nil
	}
	md := &MessageMetadata{}
	if err := json.Unmarshal([]byte(raw), md); err != nil {
		return nil
	}
	return md
}

// findConfirmation scans the most recent messages for the given confirmation
// and reports whether a later message already resolved it. Messages come back
// newest first, so a resolution is always seen before its confirmation.
func (a *Agent) findConfirmation(ctx context.Context, projectID, userID int32, confirmationID string) (*Confirmation, error) {
	limit := confirmationScanWindow
	msgs, err := a.store.ListAgentMessages(ctx, &store.FindAgentMessage{
		ProjectID: projectID,
		UserID:    userID,
		Limit:     &limit,
	})
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		md := decodeMetadata(m.Metadata)
		if md == nil {
			continue
		}
		if md.ResolvedConfirmationID == confirmationID {
			return nil, ErrConfirmationNotFound
		}
		if md.Confirmation != nil && md.Confirmation.ID == confirmationID {
			return md.Confirmation, nil
		}
	}
	return nil, ErrConfirmationNotFound
}

// describeAction renders a human-readable line for a planned tool call so the
// user can judge the batch before approving it.
func describeAction(tool, args string) string {
	fields := map[string]any{}
	_ = json.Unmarshal([]byte(args), &fields)
	str := func(key string) string {
		v, _ := fields[key].(string)
		return v
	}
	num := func(key string) int {
		v, _ := fields[key].(float64)
		return int(v)
	}

	switch tool {
	case "create_scene":
		return fmt.Sprintf("Create scene %s - %s", str("number"), str("heading"))
	case "update_scene":
		return fmt.Sprintf("Update scene %s (%s)", str("uid"), changedKeys(fields))
	case "delete_scene":
		return fmt.Sprintf("Delete scene %s", str("uid"))
	case "create_cast_member":
		return fmt.Sprintf("Add cast member %s as %q", str("name"), str("character"))
	case "update_cast_member":
		return fmt.Sprintf("Update cast member %s (%s)", str("uid"), changedKeys(fields))
	case "delete_cast_member":
		return fmt.Sprintf("Remove cast member %s", str("uid"))
	case "create_crew_member":
		return fmt.Sprintf("Add crew member %s (%s)", str("name"), str("role"))
	case "update_crew_member":
		return fmt.Sprintf("Update crew member %s (%s)", str("uid"), changedKeys(fields))
	case "delete_crew_member":
		return fmt.Sprintf("Remove crew member %s", str("uid"))
	case "create_location":
		return fmt.Sprintf("Add location %s", str("name"))
	case "update_location":
		return fmt.Sprintf("Update location %s (%s)", str("uid"), changedKeys(fields))
	case "delete_location":
		return fmt.Sprintf("Remove location %s", str("uid"))
	case "create_element":
		return fmt.Sprintf("Add %s %s", strings.ToLower(str("category")), str("name"))
	case "update_element":
		return fmt.Sprintf("Update element %s (%s)", str("uid"), changedKeys(fields))
	case "delete_element":
		return fmt.Sprintf("Remove element %s", str("uid"))
	case "create_shooting_day":
		if date := str("shoot_date"); date != "" {
			return fmt.Sprintf("Add shooting day %d on %s", num("day_number"), date)
		}
		return fmt.Sprintf("Add shooting day %d", num("day_number"))
	case "update_shooting_day":
		return fmt.Sprintf("Update shooting day %s (%s)", str("uid"), changedKeys(fields))
	case "delete_shooting_day":
		return fmt.Sprintf("Remove shooting day %s", str("uid"))
	case "assign_scene_to_day":
		return fmt.Sprintf("Assign scene %s to day %s", str("scene_uid"), str("day_uid"))
	case "unassign_scene_from_day":
		return fmt.Sprintf("Unassign scene %s from day %s", str("scene_uid"), str("day_uid"))
	default:
		return fmt.Sprintf("Run %s", tool)
	}
}

func changedKeys(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "uid" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "no changes"
	}
	sort.Strings(keys)
	return "set " + strings.Join(keys, ", ")
}

// confirmationPrompt is the assistant text shown with a pending confirmation.
func confirmationPrompt(conf *Confirmation) string {
	var sb strings.Builder
	if len(conf.Actions) == 1 {
		sb.WriteString("I'd like to make the following change:\n")
	} else {
		sb.WriteString(fmt.Sprintf("I'd like to make the following %d changes:\n", len(conf.Actions)))
	}
	for i, action := range conf.Actions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, action.Description))
	}
	sb.WriteString("Should I go ahead?")
	return sb.String()
}

package agent

import (
	"github.com/tmc/langchaingo/tools"

	"github.com/showrunnerhq/showrunner/plugin/vectorstore"
	"github.com/showrunnerhq/showrunner/store"
)

// Tier separates tools that only read project data from tools that change it.
// Mutate-tier calls are never executed directly from the loop; they are planned
// and held behind a confirmation.
type Tier string

const (
	TierRead   Tier = "read"
	TierMutate Tier = "mutate"
)

// ToolDefinition binds a tool schema to its handler.
type ToolDefinition struct {
	Name        string
	Description string
	Tier        Tier
	Parameters  map[string]any
	Required    []string
	Handler     tools.Tool
}

// Toolset is the catalog offered to the model for one request.
type Toolset struct {
	defs   []*ToolDefinition
	byName map[string]*ToolDefinition
}

func newToolset(s *store.Store, vs *vectorstore.Store, projectID int32) *Toolset {
	ts := &Toolset{byName: map[string]*ToolDefinition{}}

	// Read tier.
	ts.add(&ToolDefinition{
		Name:        "list_scenes",
		Description: "List scenes in the project, optionally filtered by status (DRAFT, APPROVED, LOCKED).",
		Tier:        TierRead,
		Parameters: map[string]any{
			"status": map[string]any{"type": "string", "description": "Optional status filter"},
		},
		Handler: &listScenesTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "search_scenes",
		Description: "Search scene synopses semantically for a concept, plot point, or topic.",
		Tier:        TierRead,
		Parameters: map[string]any{
			"query": map[string]any{"type": "string", "description": "The search query"},
		},
		Required: []string{"query"},
		Handler:  &searchScenesTool{vs: vs, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "list_cast_members",
		Description: "List the project's cast with character names and cast numbers.",
		Tier:        TierRead,
		Parameters:  map[string]any{},
		Handler:     &listCastMembersTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "list_crew_members",
		Description: "List the project's crew, optionally filtered by department.",
		Tier:        TierRead,
		Parameters: map[string]any{
			"department": map[string]any{"type": "string", "description": "Optional department filter, e.g. 'Camera'"},
		},
		Handler: &listCrewMembersTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "list_locations",
		Description: "List the project's shooting locations.",
		Tier:        TierRead,
		Parameters:  map[string]any{},
		Handler:     &listLocationsTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "list_elements",
		Description: "List production elements (props, wardrobe, vehicles, etc), optionally filtered by scene or category.",
		Tier:        TierRead,
		Parameters: map[string]any{
			"scene_uid": map[string]any{"type": "string", "description": "Optional scene UID filter"},
			"category":  map[string]any{"type": "string", "description": "Optional category filter, e.g. 'PROP'"},
		},
		Handler: &listElementsTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "list_shooting_days",
		Description: "List the project's shooting days with dates and statuses.",
		Tier:        TierRead,
		Parameters:  map[string]any{},
		Handler:     &listShootingDaysTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "get_schedule",
		Description: "Get the full shooting schedule: every shooting day with its assigned scenes in order.",
		Tier:        TierRead,
		Parameters:  map[string]any{},
		Handler:     &getScheduleTool{store: s, projectID: projectID},
	})

	// Mutate tier.
	ts.add(&ToolDefinition{
		Name:        "create_scene",
		Description: "Create a new scene. Input keys: `number`, `heading`, `synopsis` (optional), `page_eighths` (optional integer).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"number":       map[string]any{"type": "string", "description": "Scene number, e.g. '12' or '12A'"},
			"heading":      map[string]any{"type": "string", "description": "Slugline, e.g. 'INT. KITCHEN - DAY'"},
			"synopsis":     map[string]any{"type": "string", "description": "One-line synopsis"},
			"page_eighths": map[string]any{"type": "integer", "description": "Length in eighths of a page"},
		},
		Required: []string{"number", "heading"},
		Handler:  &createSceneTool{store: s, vs: vs, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "update_scene",
		Description: "Update an existing scene by UID. Only the provided keys change.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid":          map[string]any{"type": "string", "description": "Scene UID"},
			"number":       map[string]any{"type": "string"},
			"heading":      map[string]any{"type": "string"},
			"synopsis":     map[string]any{"type": "string"},
			"page_eighths": map[string]any{"type": "integer"},
			"status":       map[string]any{"type": "string", "description": "DRAFT, APPROVED, or LOCKED"},
		},
		Required: []string{"uid"},
		Handler:  &updateSceneTool{store: s, vs: vs, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "delete_scene",
		Description: "Permanently delete a scene by UID.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid": map[string]any{"type": "string", "description": "Scene UID"},
		},
		Required: []string{"uid"},
		Handler:  &deleteSceneTool{store: s, vs: vs, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "create_cast_member",
		Description: "Add a cast member. Input keys: `name`, `character`, `cast_number` (optional integer).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"name":        map[string]any{"type": "string", "description": "Actor name"},
			"character":   map[string]any{"type": "string", "description": "Character played"},
			"cast_number": map[string]any{"type": "integer", "description": "Cast number on the day-out-of-days"},
		},
		Required: []string{"name", "character"},
		Handler:  &createCastMemberTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "update_cast_member",
		Description: "Update a cast member by UID. Only the provided keys change.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid":         map[string]any{"type": "string", "description": "Cast member UID"},
			"name":        map[string]any{"type": "string"},
			"character":   map[string]any{"type": "string"},
			"cast_number": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
		},
		Required: []string{"uid"},
		Handler:  &updateCastMemberTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "delete_cast_member",
		Description: "Remove a cast member by UID.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid": map[string]any{"type": "string", "description": "Cast member UID"},
		},
		Required: []string{"uid"},
		Handler:  &deleteCastMemberTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "create_crew_member",
		Description: "Add a crew member. Input keys: `name`, `role`, `department`, `email` (optional).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"name":       map[string]any{"type": "string", "description": "Crew member name"},
			"role":       map[string]any{"type": "string", "description": "Role, e.g. '1st AD'"},
			"department": map[string]any{"type": "string", "description": "Department, e.g. 'Production'"},
			"email":      map[string]any{"type": "string"},
		},
		Required: []string{"name", "role"},
		Handler:  &createCrewMemberTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "update_crew_member",
		Description: "Update a crew member by UID. Only the provided keys change.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid":        map[string]any{"type": "string", "description": "Crew member UID"},
			"name":       map[string]any{"type": "string"},
			"role":       map[string]any{"type": "string"},
			"department": map[string]any{"type": "string"},
			"email":      map[string]any{"type": "string"},
		},
		Required: []string{"uid"},
		Handler:  &updateCrewMemberTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "delete_crew_member",
		Description: "Remove a crew member by UID.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid": map[string]any{"type": "string", "description": "Crew member UID"},
		},
		Required: []string{"uid"},
		Handler:  &deleteCrewMemberTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "create_location",
		Description: "Add a shooting location. Input keys: `name`, `address` (optional), `notes` (optional).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"name":    map[string]any{"type": "string", "description": "Location name"},
			"address": map[string]any{"type": "string"},
			"notes":   map[string]any{"type": "string"},
		},
		Required: []string{"name"},
		Handler:  &createLocationTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "update_location",
		Description: "Update a location by UID. Only the provided keys change.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid":     map[string]any{"type": "string", "description": "Location UID"},
			"name":    map[string]any{"type": "string"},
			"address": map[string]any{"type": "string"},
			"notes":   map[string]any{"type": "string"},
		},
		Required: []string{"uid"},
		Handler:  &updateLocationTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "delete_location",
		Description: "Remove a location by UID.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid": map[string]any{"type": "string", "description": "Location UID"},
		},
		Required: []string{"uid"},
		Handler:  &deleteLocationTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "create_element",
		Description: "Add a production element. Input keys: `category` (e.g. PROP, WARDROBE, VEHICLE), `name`, `scene_uid` (optional), `quantity` (optional integer).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"category":  map[string]any{"type": "string", "description": "Element category"},
			"name":      map[string]any{"type": "string", "description": "Element name"},
			"scene_uid": map[string]any{"type": "string", "description": "Scene the element belongs to"},
			"quantity":  map[string]any{"type": "integer"},
		},
		Required: []string{"category", "name"},
		Handler:  &createElementTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "update_element",
		Description: "Update a production element by UID. Only the provided keys change.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid":       map[string]any{"type": "string", "description": "Element UID"},
			"category":  map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
			"scene_uid": map[string]any{"type": "string"},
			"quantity":  map[string]any{"type": "integer"},
		},
		Required: []string{"uid"},
		Handler:  &updateElementTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "delete_element",
		Description: "Remove a production element by UID.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid": map[string]any{"type": "string", "description": "Element UID"},
		},
		Required: []string{"uid"},
		Handler:  &deleteElementTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "create_shooting_day",
		Description: "Add a shooting day. Input keys: `day_number` (integer), `shoot_date` (YYYY-MM-DD, optional), `notes` (optional).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"day_number": map[string]any{"type": "integer", "description": "Day number in the schedule"},
			"shoot_date": map[string]any{"type": "string", "description": "Date in YYYY-MM-DD"},
			"notes":      map[string]any{"type": "string"},
		},
		Required: []string{"day_number"},
		Handler:  &createShootingDayTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "update_shooting_day",
		Description: "Update a shooting day by UID. Only the provided keys change.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid":        map[string]any{"type": "string", "description": "Shooting day UID"},
			"day_number": map[string]any{"type": "integer"},
			"shoot_date": map[string]any{"type": "string"},
			"status":     map[string]any{"type": "string", "description": "PLANNED, CONFIRMED, or SHOT"},
			"notes":      map[string]any{"type": "string"},
		},
		Required: []string{"uid"},
		Handler:  &updateShootingDayTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "delete_shooting_day",
		Description: "Remove a shooting day by UID.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"uid": map[string]any{"type": "string", "description": "Shooting day UID"},
		},
		Required: []string{"uid"},
		Handler:  &deleteShootingDayTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "assign_scene_to_day",
		Description: "Put a scene on a shooting day's schedule. Input keys: `scene_uid`, `day_uid`, `sort_order` (optional integer).",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"scene_uid":  map[string]any{"type": "string", "description": "Scene UID"},
			"day_uid":    map[string]any{"type": "string", "description": "Shooting day UID"},
			"sort_order": map[string]any{"type": "integer", "description": "Position within the day"},
		},
		Required: []string{"scene_uid", "day_uid"},
		Handler:  &assignSceneTool{store: s, projectID: projectID},
	})
	ts.add(&ToolDefinition{
		Name:        "unassign_scene_from_day",
		Description: "Take a scene off a shooting day's schedule. Input keys: `scene_uid`, `day_uid`.",
		Tier:        TierMutate,
		Parameters: map[string]any{
			"scene_uid": map[string]any{"type": "string", "description": "Scene UID"},
			"day_uid":   map[string]any{"type": "string", "description": "Shooting day UID"},
		},
		Required: []string{"scene_uid", "day_uid"},
		Handler:  &unassignSceneTool{store: s, projectID: projectID},
	})

	return ts
}

func (ts *Toolset) add(def *ToolDefinition) {
	if def.Required == nil {
		def.Required = []string{}
	}
	ts.defs = append(ts.defs, def)
	ts.byName[def.Name] = def
}

// Lookup returns the definition for a tool name.
func (ts *Toolset) Lookup(name string) (*ToolDefinition, bool) {
	def, ok := ts.byName[name]
	return def, ok
}

// Definitions renders the OpenAI-compatible tool schemas sent to the model.
func (ts *Toolset) Definitions() []map[string]any {
	out := make([]map[string]any, 0, len(ts.defs))
	for _, def := range ts.defs {
		out = append(out, buildToolDef(def.Name, def.Description, def.Parameters, def.Required))
	}
	return out
}

func buildToolDef(name, description string, properties map[string]any, required []string) map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        name,
			"description": description,
			"parameters": map[string]any{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		},
	}
}

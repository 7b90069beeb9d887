package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/showrunnerhq/showrunner/store"
)

// Caps on how much of each entity family is folded into the system prompt.
// A failed section is skipped with a warning rather than failing the request.
const (
	contextMaxScenes       = 200
	contextMaxCast         = 60
	contextMaxCrew         = 160
	contextMaxLocations    = 80
	contextMaxElements     = 120
	contextMaxShootingDays = 60
)

// buildProjectContext renders a compact snapshot of the project for the
// system prompt so the model can resolve names and UIDs without tool calls.
func (a *Agent) buildProjectContext(ctx context.Context, project *store.Project) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project: %s (status %s)\n", project.Name, project.Status))

	limit := contextMaxScenes
	scenes, err := a.store.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID, Limit: &limit})
	if err != nil {
		slog.Warn("context: failed to load scenes", "project", project.UID, "err", err)
	} else if len(scenes) > 0 {
		sb.WriteString("\nScenes:\n")
		for _, sc := range scenes {
			sb.WriteString(fmt.Sprintf("- %s [%s] %s (%s)\n", sc.Number, sc.UID, sc.Heading, sc.Status))
		}
	}

	limit = contextMaxCast
	cast, err := a.store.ListCastMembers(ctx, &store.FindCastMember{ProjectID: &project.ID, Limit: &limit})
	if err != nil {
		slog.Warn("context: failed to load cast", "project", project.UID, "err", err)
	} else if len(cast) > 0 {
		sb.WriteString("\nCast:\n")
		for _, c := range cast {
			sb.WriteString(fmt.Sprintf("- #%d %s as %q [%s]\n", c.CastNumber, c.Name, c.Character, c.UID))
		}
	}

	limit = contextMaxCrew
	crew, err := a.store.ListCrewMembers(ctx, &store.FindCrewMember{ProjectID: &project.ID, Limit: &limit})
	if err != nil {
		slog.Warn("context: failed to load crew", "project", project.UID, "err", err)
	} else if len(crew) > 0 {
		sb.WriteString("\nCrew:\n")
		for _, c := range crew {
			sb.WriteString(fmt.Sprintf("- %s, %s (%s) [%s]\n", c.Name, c.Role, c.Department, c.UID))
		}
	}

	limit = contextMaxLocations
	locations, err := a.store.ListLocations(ctx, &store.FindLocation{ProjectID: &project.ID, Limit: &limit})
	if err != nil {
		slog.Warn("context: failed to load locations", "project", project.UID, "err", err)
	} else if len(locations) > 0 {
		sb.WriteString("\nLocations:\n")
		for _, l := range locations {
			sb.WriteString(fmt.Sprintf("- %s [%s]\n", l.Name, l.UID))
		}
	}

	limit = contextMaxElements
	elements, err := a.store.ListElements(ctx, &store.FindElement{ProjectID: &project.ID, Limit: &limit})
	if err != nil {
		slog.Warn("context: failed to load elements", "project", project.UID, "err", err)
	} else if len(elements) > 0 {
		sb.WriteString("\nElements:\n")
		for _, e := range elements {
			sb.WriteString(fmt.Sprintf("- %s: %s [%s]\n", e.Category, e.Name, e.UID))
		}
	}

	limit = contextMaxShootingDays
	days, err := a.store.ListShootingDays(ctx, &store.FindShootingDay{ProjectID: &project.ID, Limit: &limit})
	if err != nil {
		slog.Warn("context: failed to load shooting days", "project", project.UID, "err", err)
	} else if len(days) > 0 {
		sb.WriteString("\nShooting days:\n")
		for _, day := range days {
			line := fmt.Sprintf("- Day %d [%s] (%s)", day.DayNumber, day.UID, day.Status)
			if day.ShootDate != "" {
				line += " " + day.ShootDate
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

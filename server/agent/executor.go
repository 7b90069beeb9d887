package agent

import (
	"context"
	"log/slog"
	"strings"
)

// executeActions runs an approved batch strictly in plan order. A failed
// action is recorded and execution moves on; earlier mutations are not
// rolled back.
func (a *Agent) executeActions(ctx context.Context, ts *Toolset, projectID int32, actions []PlannedAction) []ActionResult {
	results := make([]ActionResult, 0, len(actions))
	for _, action := range actions {
		result := ActionResult{Tool: action.Tool, Description: action.Description}

		def, ok := ts.Lookup(action.Tool)
		if !ok {
			result.Error = "unknown tool: " + action.Tool
			results = append(results, result)
			continue
		}

		output, err := def.Handler.Call(ctx, action.Args)
		if err != nil {
			result.Error = err.Error()
		} else if isToolError(output) {
			result.Error = output
		} else {
			result.Success = true
			result.Output = output
		}
		slog.Info("executed action", "tool", action.Tool, "success", result.Success)

		if result.Success && def.Tier == TierMutate {
			verified, discrepancy := a.verifyAction(ctx, projectID, action)
			result.Verified = verified
			result.Discrepancy = discrepancy
			if !verified {
				slog.Warn("verification failed", "tool", action.Tool, "discrepancy", discrepancy)
			}
		}

		results = append(results, result)
	}
	return results
}

// Tool handlers return user-facing failures as "Error: ..." strings rather
// than Go errors, matching how the loop reports them to the model.
func isToolError(output string) bool {
	return strings.HasPrefix(output, "Error")
}

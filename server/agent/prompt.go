package agent

import (
	"fmt"
	"time"
)

func buildSystemPrompt(now time.Time) string {
	return fmt.Sprintf(
		`You are the production office assistant for a film and TV project.
Today's local date: %s.

You have tools that read and change the project's scenes, cast, crew, locations, elements, and shooting schedule.
CRITICAL INSTRUCTIONS:
1. ALWAYS use tools to look up project data. Never answer from memory alone.
2. Refer to records by the UIDs shown in the project snapshot or returned by tools.
3. Changes you request are NOT applied immediately. They are shown to the user for approval first, so batch related changes into a single turn.
4. If a tool returns no results, tell the user exactly that. Never invent scenes, people, or dates.
5. Keep answers short and concrete, the way a production coordinator would.`,
		now.Format("2006-01-02"),
	)
}

// summaryPrompt asks for a plain-language report of an executed batch.
func summaryPrompt(results []ActionResult) string {
	out := "You just executed a batch of approved changes to a film production database. " +
		"Summarize the outcome for the user in a short paragraph. " +
		"State plainly which changes succeeded and which failed, including discrepancies found when re-checking the data. " +
		"Do not invent changes that are not listed.\n\nResults:\n"
	for i, r := range results {
		status := "OK"
		if !r.Success {
			status = "FAILED: " + r.Error
		} else if !r.Verified {
			status = "APPLIED BUT UNVERIFIED: " + r.Discrepancy
		}
		out += fmt.Sprintf("%d. %s - %s\n", i+1, r.Description, status)
	}
	return out
}

package aigen

import "fmt"

// systemPrompt pins the model to strict minified JSON with exactly the three
// agenda keys. Any deviation is caught downstream by decodeAgenda.
const systemPrompt = `You are an expert meeting agenda generator. ALWAYS respond with STRICT, valid, minified JSON only, matching this exact shape: {"opening": string, "topics": [{"name": string, "duration": string}], "wrapUp": string}. Do not add markdown, backticks, commentary, or any keys beyond these three. Keep opening and wrapUp concise. Infer the meeting type from the title and tailor topics accordingly.`

// buildUserPrompt embeds the trimmed title together with the authoring
// heuristics for each recognised meeting type. The editorial bounds (topic
// count, durations, total length) are advisory; the validator does not
// enforce them.
func buildUserPrompt(meetingTitle string) string {
	return fmt.Sprintf(`Generate a professional agenda for: %q

Instructions:
- Infer the meeting type from the title (e.g., Sprint Planning, Daily Standup, 1:1, Retrospective, Sales Discovery, Design Review, Project Kickoff, Executive Review, Brainstorming).
- Tailor the topics to that type.
- 2 to 6 topics depending on meeting type and complexity.
- Use realistic durations per topic (5-30 min) and keep total to ~30-90 minutes unless the title implies longer.
- opening: 1-2 sentences that set context for this specific type.
- wrapUp: 1-2 sentences with decisions/actions/next steps relevant to the type.

Hints by type (not exhaustive):
- Sprint Planning: Capacity, Prioritized Backlog, Sprint Goal, Assignments.
- Retrospective: What went well, What to improve, Action items.
- Daily Standup: Yesterday/Today/Blockers, Risks, Hand-offs.
- 1:1: Updates, Feedback, Career/Development, Action items.
- Sales Discovery: Goals/Pain, Current process, Fit/Gaps, Next steps.
- Kickoff: Objectives/Scope, Roles/Comms, Milestones, Risks.
- Design Review: Requirements, Concepts, Feedback/Decisions, Next steps.
- Executive Review: KPIs, Risks/Asks (Decide), Initiatives, Next steps.

Return ONLY valid minified JSON matching: {opening:string, topics:[{name:string, duration:string}], wrapUp:string}.`, meetingTitle)
}

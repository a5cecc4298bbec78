package mcpserver

// AgendaFormatContract describes the canonical agenda JSON shape that
// LLM consumers should follow when saving or generating agendas.
const AgendaFormatContract = `# Ansuz Agenda Format Contract

Every agenda handled by Ansuz MUST follow this structure.

## Structure

` + "```" + `json
{
  "opening": "One or two sentences that open the meeting",
  "topics": [
    { "name": "Topic title", "duration": "10 min" }
  ],
  "wrapUp": "One or two sentences that close the meeting"
}
` + "```" + `

## Rules

1. **All three keys are required.** ` + "`" + `opening` + "`" + `, ` + "`" + `topics` + "`" + ` and ` + "`" + `wrapUp` + "`" + `
   must all be present; ` + "`" + `topics` + "`" + ` may be an empty array but never null.
2. **Every topic needs both fields.** ` + "`" + `name` + "`" + ` and ` + "`" + `duration` + "`" + ` are strings;
   a topic missing either one is rejected.
3. **Durations are free-form strings** such as ` + "`" + `"5 min"` + "`" + ` or ` + "`" + `"15 minutes"` + "`" + ` —
   they are displayed verbatim, not parsed.
4. **No extra nesting.** The three keys above are the whole document; saved
   records add metadata (title, tags, share token) around it, never inside it.

## Example

` + "```" + `json
{
  "opening": "Welcome everyone and recap last sprint's goals.",
  "topics": [
    { "name": "Velocity review", "duration": "10 min" },
    { "name": "Backlog grooming", "duration": "20 min" },
    { "name": "Capacity planning", "duration": "15 min" }
  ],
  "wrapUp": "Confirm sprint commitment and assign owners."
}
` + "```" + `
`

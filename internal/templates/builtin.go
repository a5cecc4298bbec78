package templates

import "github.com/starford/ansuz/internal/models"

// builtin returns the canned agendas shipped with the service. They are a
// shortcut that bypasses AI generation entirely.
func builtin() []Item {
	return []Item{
		{
			ID:   "team-standup",
			Name: "Team Standup",
			Agenda: models.Agenda{
				Opening: "Quick sync on progress, priorities, and blockers.",
				Topics: []models.AgendaTopic{
					{Name: "What did you accomplish?", Duration: "4 min"},
					{Name: "What will you do next?", Duration: "4 min"},
					{Name: "Any blockers?", Duration: "4 min"},
					{Name: "Announcements", Duration: "3 min"},
				},
				WrapUp: "Support each other with blockers and proceed with priorities.",
			},
		},
		{
			ID:   "one-on-one-checkin",
			Name: "1:1 Check-In",
			Agenda: models.Agenda{
				Opening: "Regular manager-employee check-in to discuss work and support.",
				Topics: []models.AgendaTopic{
					{Name: "Overall well-being and workload", Duration: "8 min"},
					{Name: "Current priorities and progress", Duration: "8 min"},
					{Name: "Challenges and support needed", Duration: "8 min"},
					{Name: "Next steps and follow-ups", Duration: "6 min"},
				},
				WrapUp: "Summarize actions and confirm next check-in.",
			},
		},
		{
			ID:   "sprint-planning",
			Name: "Sprint Planning",
			Agenda: models.Agenda{
				Opening: "Plan sprint goals, refine backlog, and assign work.",
				Topics: []models.AgendaTopic{
					{Name: "Sprint goals and capacity", Duration: "15 min"},
					{Name: "Backlog prioritization and estimates", Duration: "30 min"},
					{Name: "Task assignment and ownership", Duration: "25 min"},
					{Name: "Risks and dependencies", Duration: "10 min"},
				},
				WrapUp: "Confirm commitments and communicate kickoff.",
			},
		},
		{
			ID:   "sales-meeting",
			Name: "Sales Meeting",
			Agenda: models.Agenda{
				Opening: "Understand prospect needs and present the best solution.",
				Topics: []models.AgendaTopic{
					{Name: "Introductions and context", Duration: "5 min"},
					{Name: "Prospect challenges and goals", Duration: "12 min"},
					{Name: "Solution and value", Duration: "15 min"},
					{Name: "Timeline and next steps", Duration: "8 min"},
				},
				WrapUp: "Agree on next steps and follow-up materials.",
			},
		},
		{
			ID:   "board-update",
			Name: "Board/Stakeholder Update",
			Agenda: models.Agenda{
				Opening: "Executive update on performance and initiatives.",
				Topics: []models.AgendaTopic{
					{Name: "Key metrics and financials", Duration: "15 min"},
					{Name: "Strategic initiatives progress", Duration: "15 min"},
					{Name: "Risks and mitigation", Duration: "15 min"},
					{Name: "Discussion and feedback", Duration: "15 min"},
				},
				WrapUp: "Document feedback and action items.",
			},
		},
		{
			ID:   "brainstorming",
			Name: "Brainstorming Session",
			Agenda: models.Agenda{
				Opening: "Creative ideation to generate and evaluate ideas.",
				Topics: []models.AgendaTopic{
					{Name: "Problem context and goals", Duration: "10 min"},
					{Name: "Individual idea generation", Duration: "20 min"},
					{Name: "Group sharing and clustering", Duration: "20 min"},
					{Name: "Prioritization and selection", Duration: "10 min"},
				},
				WrapUp: "Assign owners to top ideas and next steps.",
			},
		},
		{
			ID:   "retrospective",
			Name: "Retrospective",
			Agenda: models.Agenda{
				Opening: "Reflect on work period to improve processes.",
				Topics: []models.AgendaTopic{
					{Name: "What went well", Duration: "20 min"},
					{Name: "What didn't go well", Duration: "20 min"},
					{Name: "Action items and owners", Duration: "20 min"},
				},
				WrapUp: "Confirm improvements and timelines.",
			},
		},
	}
}

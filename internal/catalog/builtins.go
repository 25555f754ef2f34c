package catalog

import "github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"

// builtins are the examples that ship with the application.
var builtins = map[string]Example{
	"buzzword": {
		Slug: "buzzword",
		Name: "Corporate Buzzword Bingo",
		Input: card.Input{
			Title: "Corporate Buzzword Bingo",
			Terms: []string{
				"Synergy", "Circle back", "Low-hanging fruit", "Move the needle",
				"Paradigm shift", "Bandwidth", "Deep dive", "Touch base",
				"Take this offline", "Boil the ocean", "Quick win", "Think outside the box",
				"Value-add", "Leverage", "Best practice", "Alignment",
				"Drill down", "North star", "Double-click on that", "At the end of the day",
				"Game changer", "Pivot", "Stakeholder buy-in", "Net-net",
			},
			FreeSpaceIcon: "star",
		},
	},
	"standup": {
		Slug: "standup",
		Name: "Daily Standup Bingo",
		Input: card.Input{
			Title: "Daily Standup Bingo",
			Terms: []string{
				"No blockers", "You're on mute", "Quick question", "Still working on it",
				"Can everyone see my screen", "Let's take it offline", "Sorry I'm late", "Waiting on review",
				"It works on my machine", "The build is red", "I'll create a ticket", "Almost done",
				"Flaky test", "Merge conflict", "Who's taking notes", "We're over time",
				"Dog barking", "Someone's typing", "Can you repeat that", "Demo gods",
				"Scope creep", "Prod incident", "One more thing", "Retro action item",
			},
			FreeSpaceIcon: "coffee",
		},
	},
}

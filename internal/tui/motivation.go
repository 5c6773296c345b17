package tui

import "math/rand"

// motivationMessages is shown on the home screen when the motivation
// setting is enabled. One is picked per task change.
var motivationMessages = []string{
	"You've got this ✨",
	"One step at a time 🌟",
	"Time to focus 💪",
	"Great start 🎯",
	"Keep it going today 🌈",
	"Full of energy 🔥",
	"Making steady progress 📈",
	"Stay in the groove 🎵",
}

func randomMotivation() string {
	return motivationMessages[rand.Intn(len(motivationMessages))]
}

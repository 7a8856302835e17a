package models

// DefaultPrompts are offered when there is no journaling history to build on.
var DefaultPrompts = []string{
	"What's one thing you're grateful for today?",
	"What challenged you today?",
}

// PromptSets maps a date to the ordered prompts generated or saved for it.
type PromptSets map[string][]string

// Clone returns a deep copy of the prompt sets.
func (p PromptSets) Clone() PromptSets {
	out := make(PromptSets, len(p))
	for date, prompts := range p {
		out[date] = append([]string(nil), prompts...)
	}
	return out
}

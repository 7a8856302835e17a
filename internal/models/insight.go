package models

// Summary is what the generator returns when narrating a period.
type Summary struct {
	Summary             string   `json:"summary"`
	Patterns            []string `json:"patterns"`
	ReflectionQuestions []string `json:"reflectionQuestions"`
}

// Insight is the full response of an insight query. Progress is nil when the
// previous period has no entries.
type Insight struct {
	Summary
	Progress *Comparison `json:"progress"`
}

// Classification is the classifier's verdict on one piece of journal text.
type Classification struct {
	Sentiment Sentiment `json:"sentiment"`
	Themes    []string  `json:"themes"`
}

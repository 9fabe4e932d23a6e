package domain

import "time"

// ProjectType is the kind of design the prompt describes.
type ProjectType string

const (
	TypeWebsite ProjectType = "website"
	TypeApp     ProjectType = "app"
)

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	return t == TypeWebsite || t == TypeApp
}

// Project is a single design request. Prompt and type are immutable after
// creation; only the title can change.
type Project struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Title     string      `json:"title"`
	Prompt    string      `json:"prompt"`
	Type      ProjectType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

// TitleMaxRunes is the truncation point for titles derived from prompts.
const TitleMaxRunes = 50

// DeriveTitle builds the initial project title from the prompt: the first
// 50 characters, with a literal "..." appended when truncation occurred.
func DeriveTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= TitleMaxRunes {
		return prompt
	}
	return string(runes[:TitleMaxRunes]) + "..."
}

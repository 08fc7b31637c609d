package catalog

import (
	"fmt"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// ActionType is the closed taxonomy of action subtypes. Adding a new
// subtype means adding a constant here and extending the mapping tables
// below; unknown strings never round-trip silently.
type ActionType string

const (
	TypeMultipleChoice    ActionType = "multiple-choice"
	TypeOpenText          ActionType = "open-text"
	TypeRating            ActionType = "rating"
	TypeExternalLink      ActionType = "external-link"
	TypeContentEngagement ActionType = "content-engagement"
	TypeImageUpload       ActionType = "image-upload"
	TypeSecretCode        ActionType = "secret-code"
	TypeDateSelection     ActionType = "date-selection"
)

// Section identifies which picker section a template belongs to
type Section string

const (
	SectionQuestion    Section = "question"
	SectionInteraction Section = "interaction"
)

type typeInfo struct {
	key         string
	section     Section
	seedsAnswer bool
}

// typeTable is the total mapping from ActionType to its wire key and
// behavior. Every declared type must have an entry; ParseType rejects
// anything outside the table.
var typeTable = map[ActionType]typeInfo{
	TypeMultipleChoice:    {key: models.ActionKeyMultipleChoice, section: SectionQuestion, seedsAnswer: true},
	TypeOpenText:          {key: "question-open-text", section: SectionQuestion},
	TypeRating:            {key: "question-rating", section: SectionQuestion},
	TypeExternalLink:      {key: "interaction-external-link", section: SectionInteraction},
	TypeContentEngagement: {key: "interaction-content-engagement", section: SectionInteraction},
	TypeImageUpload:       {key: "interaction-image-upload", section: SectionInteraction},
	TypeSecretCode:        {key: "interaction-secret-code", section: SectionInteraction},
	TypeDateSelection:     {key: "interaction-date-selection", section: SectionInteraction},
}

// ParseType converts a string into an ActionType, rejecting unknown values
func ParseType(s string) (ActionType, error) {
	t := ActionType(s)
	if _, ok := typeTable[t]; !ok {
		return "", fmt.Errorf("unknown action type: %q", s)
	}
	return t, nil
}

// Valid returns true if the type is part of the taxonomy
func (t ActionType) Valid() bool {
	_, ok := typeTable[t]
	return ok
}

// Key returns the wire-level action key for the type
func (t ActionType) Key() string {
	return typeTable[t].key
}

// Section returns the picker section the type belongs to
func (t ActionType) Section() Section {
	return typeTable[t].section
}

// SeedsAnswer returns true if a freshly added question of this type
// starts with one empty answer flagged correct
func (t ActionType) SeedsAnswer() bool {
	return typeTable[t].seedsAnswer
}

// Template is one named action the user can add from the picker
type Template struct {
	Icon        string     `yaml:"icon" json:"icon"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Type        ActionType `yaml:"type" json:"type"`
}

// Catalog groups templates into the two picker sections
type Catalog struct {
	Questions    []Template
	Interactions []Template
}

// Default returns the built-in action catalog
func Default() *Catalog {
	return &Catalog{
		Questions: []Template{
			{Icon: "✓", Title: "Correctly answer a question", Description: "Ask a question with a predefined answer(s)", Type: TypeMultipleChoice},
			{Icon: "✏️", Title: "Open-text question", Description: "Ask an open text question to gather information", Type: TypeOpenText},
			{Icon: "📝", Title: "Multiple Choice", Description: "Allow the user to choose from a small set of different answers", Type: TypeMultipleChoice},
			{Icon: "⭐", Title: "Rate your experience", Description: "Ask the user to rate their experience with you", Type: TypeRating},
			{Icon: "📋", Title: "Select from a list", Description: "Ask a question with a list of possible answers", Type: TypeMultipleChoice},
		},
		Interactions: []Template{
			{Icon: "🔗", Title: "Visit an external link", Description: "Have a user engage with a link to your content", Type: TypeExternalLink},
			{Icon: "📱", Title: "Engage with content", Description: "Provide content for users to engage with using text, photos or video", Type: TypeContentEngagement},
			{Icon: "🖼️", Title: "Upload an image", Description: "Upload an image", Type: TypeImageUpload},
			{Icon: "🔒", Title: "Enter a secret access code", Description: "Get users to enter a secret access code", Type: TypeSecretCode},
			{Icon: "📅", Title: "Select a date", Description: "Prompt users to select a date based on specific criteria", Type: TypeDateSelection},
		},
	}
}

// Find returns the first template with the given title, searching both
// sections, or nil if none matches
func (c *Catalog) Find(title string) *Template {
	for i := range c.Questions {
		if c.Questions[i].Title == title {
			return &c.Questions[i]
		}
	}
	for i := range c.Interactions {
		if c.Interactions[i].Title == title {
			return &c.Interactions[i]
		}
	}
	return nil
}

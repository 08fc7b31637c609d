package models

import (
	"time"
)

// Action wire-level constants. The backend identifies action subtypes by
// key; this console only edits the multiple-choice question subtype.
const (
	ActionCategoryQuestion    = "question"
	ActionCategoryInteraction = "interaction"

	ActionKeyMultipleChoice = "question-multiple-choice"

	ActionAllocatedToChallenge = "challenge"

	SocialValidationUserChoice = "user-choice"
)

// ActionOption is one selectable option of a question action
type ActionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ActionAttributes holds the subtype-specific payload of an action
type ActionAttributes struct {
	Key                     string         `json:"key,omitempty"`
	Question                string         `json:"question"`
	Options                 []ActionOption `json:"options"`
	NumberOfAnswersRequired int            `json:"numberOfAnswersRequired"`
	CorrectAnswers          []string       `json:"correctAnswers"`
}

// ActionConfig holds behavioral flags of an action
type ActionConfig struct {
	IsOptional       bool   `json:"isOptional"`
	SocialValidation string `json:"socialValidation,omitempty"`
}

// Action represents a persisted unit of challenge interaction
type Action struct {
	ID           string           `json:"id"`
	CommunityID  string           `json:"communityId"`
	AllocationID string           `json:"allocationId"`
	AllocatedTo  string           `json:"allocatedTo"`
	Category     string           `json:"category"`
	Key          string           `json:"key"`
	Attributes   ActionAttributes `json:"attributes"`
	Config       ActionConfig     `json:"config"`
	CreatedAt    time.Time        `json:"createdAt,omitempty"`
}

// ActionRequest is the envelope sent when creating or updating an action.
// Details carries the parent challenge details as an opaque passthrough;
// the backend denormalizes them onto the action record.
type ActionRequest struct {
	CommunityID  string            `json:"communityId"`
	AllocationID string            `json:"allocationId"`
	AllocatedTo  string            `json:"allocatedTo"`
	Category     string            `json:"category"`
	Key          string            `json:"key"`
	Details      *ChallengeDetails `json:"details,omitempty"`
	Attributes   ActionAttributes  `json:"attributes"`
	Config       ActionConfig      `json:"config"`
}

// ActionPage is a paginated list of actions
type ActionPage struct {
	Edges      []Action `json:"edges"`
	TotalCount int      `json:"totalCount"`
}

// ActionListOptions contains query parameters for listing actions
type ActionListOptions struct {
	ChallengeID string
	CommunityID string
	Limit       int
	Skip        int
}

package models

import (
	"time"
)

// ChallengeStatus represents the lifecycle state of a challenge
type ChallengeStatus string

const (
	StatusArchived  ChallengeStatus = "archived"
	StatusDraft     ChallengeStatus = "draft"
	StatusExpired   ChallengeStatus = "expired"
	StatusLive      ChallengeStatus = "live"
	StatusScheduled ChallengeStatus = "scheduled"
)

// Valid returns true if the status is one of the recognized states
func (s ChallengeStatus) Valid() bool {
	switch s {
	case StatusArchived, StatusDraft, StatusExpired, StatusLive, StatusScheduled:
		return true
	}
	return false
}

// IsEditable returns true if the challenge can still be modified
func (s ChallengeStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusScheduled
}

// ChallengeDetails holds the display attributes of a challenge
type ChallengeDetails struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	BannerURL   string `json:"bannerUrl" validate:"omitempty,url"`
	Subtitle    string `json:"subtitle,omitempty"`
}

// Challenge represents a gamified task within a community
type Challenge struct {
	ID             string           `json:"id"`
	OrganisationID string           `json:"organisationId"`
	CommunityID    string           `json:"communityId"`
	Details        ChallengeDetails `json:"details"`
	Status         ChallengeStatus  `json:"status"`
	Featured       bool             `json:"featured"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ChallengeInput is the payload for creating or updating a challenge.
// Validation tags cover the basic form checks; anything beyond that is
// enforced server-side.
type ChallengeInput struct {
	CommunityID string           `json:"communityId" validate:"required"`
	Details     ChallengeDetails `json:"details"`
	Status      ChallengeStatus  `json:"status" validate:"omitempty,oneof=archived draft expired live scheduled"`
	Featured    bool             `json:"featured"`
}

// ChallengePage is a paginated list of challenges
type ChallengePage struct {
	Edges      []Challenge `json:"edges"`
	TotalCount int         `json:"totalCount"`
}

// ChallengeListOptions contains query parameters for listing challenges
type ChallengeListOptions struct {
	Page        int
	Limit       int
	Skip        int
	CommunityID string
	Search      string
}

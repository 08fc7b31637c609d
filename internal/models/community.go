package models

import (
	"time"
)

// Community represents a community (team) within an organisation. The
// console scopes every fetch to the active community.
type Community struct {
	ID             string    `json:"id"`
	OrganisationID string    `json:"organisationId"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	CommunityType  string    `json:"communityType,omitempty"`
	Access         string    `json:"access,omitempty"`
	Status         string    `json:"status,omitempty"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CommunityPage is a paginated list of communities
type CommunityPage struct {
	Edges      []Community `json:"edges"`
	TotalCount int         `json:"totalCount"`
}

// CommunityListOptions contains query parameters for listing communities
type CommunityListOptions struct {
	Page  int
	Limit int
	Skip  int
}

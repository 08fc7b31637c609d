package models

// RewardDetails holds the display attributes of a reward
type RewardDetails struct {
	Title     string `json:"title"`
	BannerURL string `json:"bannerUrl"`
}

// Allocation is one distributable slice of a reward, carrying its own
// supply counters
type Allocation struct {
	ID                 string `json:"id"`
	RewardID           string `json:"rewardId"`
	AllocationType     string `json:"allocationType"`
	Supply             int    `json:"supply"`
	Distributed        int    `json:"distributed"`
	AmountToDistribute int    `json:"amountToDistribute"`
}

// Reward is a catalog entry; read-only in this console
type Reward struct {
	ID                 string        `json:"id"`
	CommunityID        string        `json:"communityId,omitempty"`
	Details            RewardDetails `json:"details"`
	Supply             int           `json:"supply"`
	Distributed        int           `json:"distributed"`
	AmountToDistribute int           `json:"amountToDistribute"`
	Allocations        []Allocation  `json:"allocations"`
}

// RewardPage is a paginated list of rewards
type RewardPage struct {
	Edges      []Reward `json:"edges"`
	TotalCount int      `json:"totalCount"`
}

// RewardListOptions contains query parameters for listing rewards
type RewardListOptions struct {
	CommunityID string
	Limit       int
	Skip        int
	Search      string
}

// DistributionMechanism values recognized by the backend
const (
	MechanismSelect = "select"
)

// AllocationEntry is one allocation row inside a distribution config
type AllocationEntry struct {
	AllocationType     string `json:"allocationType"`
	AmountToDistribute int    `json:"amountToDistribute"`
	RewardID           string `json:"rewardId"`
	ID                 string `json:"id"`
}

// RewardsConfig describes which allocations a challenge grants
type RewardsConfig struct {
	Mechanism          string            `json:"mechanism"`
	AmountToDistribute int               `json:"amountToDistribute"`
	Allocations        []AllocationEntry `json:"allocations"`
}

// Distribution is the persisted document describing what a challenge
// grants on completion. The backend echoes ChallengeID on assignment;
// an empty echo means the assignment was not applied.
type Distribution struct {
	ChallengeID         string        `json:"challengeId,omitempty"`
	RewardsConfig       RewardsConfig `json:"rewardsConfig"`
	PointsToDistribute  int           `json:"pointsToDistribute"`
	BonusXPToDistribute int           `json:"bonusXpToDistribute"`
}

// DistributionRequest is the payload for assigning a distribution
type DistributionRequest struct {
	RewardsConfig       RewardsConfig `json:"rewardsConfig"`
	PointsToDistribute  int           `json:"pointsToDistribute"`
	BonusXPToDistribute int           `json:"bonusXpToDistribute"`
}

package stub

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// Common errors
var (
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrActionNotFound       = errors.New("action not found")
	ErrDistributionNotFound = errors.New("distribution not found")
)

// Store is the in-memory state behind the stub admin API. It mimics the
// contract of the production backend closely enough for the console and
// its tests; persistence is deliberately out of scope.
type Store struct {
	mu            sync.RWMutex
	challenges    map[string]models.Challenge
	actions       map[string]models.Action
	rewards       map[string]models.Reward
	communities   map[string]models.Community
	distributions map[string]models.Distribution
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		challenges:    make(map[string]models.Challenge),
		actions:       make(map[string]models.Action),
		rewards:       make(map[string]models.Reward),
		communities:   make(map[string]models.Community),
		distributions: make(map[string]models.Distribution),
	}
}

// CreateChallenge inserts a challenge with a server-assigned id
func (s *Store) CreateChallenge(input models.ChallengeInput) models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	challenge := models.Challenge{
		ID:          uuid.NewString(),
		CommunityID: input.CommunityID,
		Details:     input.Details,
		Status:      status,
		Featured:    input.Featured,
		CreatedAt:   time.Now().UTC(),
	}
	if community, ok := s.communities[input.CommunityID]; ok {
		challenge.OrganisationID = community.OrganisationID
	}
	s.challenges[challenge.ID] = challenge
	return challenge
}

// GetChallenge retrieves a challenge by id
func (s *Store) GetChallenge(id string) (models.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, ok := s.challenges[id]
	if !ok {
		return models.Challenge{}, ErrChallengeNotFound
	}
	return challenge, nil
}

// UpdateChallenge applies the input to an existing challenge
func (s *Store) UpdateChallenge(id string, input models.ChallengeInput) (models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[id]
	if !ok {
		return models.Challenge{}, ErrChallengeNotFound
	}
	challenge.Details = input.Details
	if input.Status != "" {
		challenge.Status = input.Status
	}
	challenge.Featured = input.Featured
	s.challenges[id] = challenge
	return challenge, nil
}

// DeleteChallenge removes a challenge and its distribution
func (s *Store) DeleteChallenge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[id]; !ok {
		return ErrChallengeNotFound
	}
	delete(s.challenges, id)
	delete(s.distributions, id)
	return nil
}

// ListChallenges returns a page of challenges filtered by community and
// title search, ordered by creation time descending
func (s *Store) ListChallenges(opts models.ChallengeListOptions) models.ChallengePage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []models.Challenge
	for _, c := range s.challenges {
		if opts.CommunityID != "" && c.CommunityID != opts.CommunityID {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(c.Details.Title), strings.ToLower(opts.Search)) {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return models.ChallengePage{
		Edges:      paginate(filtered, opts.Skip, opts.Limit),
		TotalCount: len(filtered),
	}
}

// CreateAction inserts an action with a server-assigned id
func (s *Store) CreateAction(req models.ActionRequest) models.Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := models.Action{
		ID:           uuid.NewString(),
		CommunityID:  req.CommunityID,
		AllocationID: req.AllocationID,
		AllocatedTo:  req.AllocatedTo,
		Category:     req.Category,
		Key:          req.Key,
		Attributes:   req.Attributes,
		Config:       req.Config,
		CreatedAt:    time.Now().UTC(),
	}
	s.actions[action.ID] = action
	return action
}

// UpdateAction applies the request to an existing action
func (s *Store) UpdateAction(id string, req models.ActionRequest) (models.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.actions[id]
	if !ok {
		return models.Action{}, ErrActionNotFound
	}
	action.Attributes = req.Attributes
	action.Config = req.Config
	if req.Key != "" {
		action.Key = req.Key
	}
	s.actions[id] = action
	return action, nil
}

// ListActions returns a page of actions filtered by challenge and
// community, ordered by creation time ascending
func (s *Store) ListActions(opts models.ActionListOptions) models.ActionPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []models.Action
	for _, a := range s.actions {
		if opts.ChallengeID != "" && a.AllocationID != opts.ChallengeID {
			continue
		}
		if opts.CommunityID != "" && a.CommunityID != opts.CommunityID {
			continue
		}
		filtered = append(filtered, a)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})

	return models.ActionPage{
		Edges:      paginate(filtered, opts.Skip, opts.Limit),
		TotalCount: len(filtered),
	}
}

// AddReward seeds a reward into the catalog
func (s *Store) AddReward(reward models.Reward) models.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	for i := range reward.Allocations {
		if reward.Allocations[i].ID == "" {
			reward.Allocations[i].ID = uuid.NewString()
		}
		reward.Allocations[i].RewardID = reward.ID
	}
	s.rewards[reward.ID] = reward
	return reward
}

// ListRewards returns a page of the reward catalog
func (s *Store) ListRewards(opts models.RewardListOptions) models.RewardPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []models.Reward
	for _, r := range s.rewards {
		if opts.CommunityID != "" && r.CommunityID != opts.CommunityID {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(r.Details.Title), strings.ToLower(opts.Search)) {
			continue
		}
		filtered = append(filtered, r)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Details.Title < filtered[j].Details.Title
	})

	return models.RewardPage{
		Edges:      paginate(filtered, opts.Skip, opts.Limit),
		TotalCount: len(filtered),
	}
}

// AddCommunity seeds a community
func (s *Store) AddCommunity(community models.Community) models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()

	if community.ID == "" {
		community.ID = uuid.NewString()
	}
	s.communities[community.ID] = community
	return community
}

// ListCommunities returns a page of communities
func (s *Store) ListCommunities(opts models.CommunityListOptions) models.CommunityPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	communities := make([]models.Community, 0, len(s.communities))
	for _, c := range s.communities {
		communities = append(communities, c)
	}
	sort.Slice(communities, func(i, j int) bool {
		return communities[i].Name < communities[j].Name
	})

	return models.CommunityPage{
		Edges:      paginate(communities, opts.Skip, opts.Limit),
		TotalCount: len(communities),
	}
}

// AssignDistribution stores the distribution config for a challenge and
// returns the persisted document with the challenge id echoed
func (s *Store) AssignDistribution(challengeID string, req models.DistributionRequest) (models.Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[challengeID]; !ok {
		return models.Distribution{}, ErrChallengeNotFound
	}
	dist := models.Distribution{
		ChallengeID:         challengeID,
		RewardsConfig:       req.RewardsConfig,
		PointsToDistribute:  req.PointsToDistribute,
		BonusXPToDistribute: req.BonusXPToDistribute,
	}
	s.distributions[challengeID] = dist
	return dist, nil
}

// GetDistribution retrieves the distribution config for a challenge
func (s *Store) GetDistribution(challengeID string) (models.Distribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist, ok := s.distributions[challengeID]
	if !ok {
		return models.Distribution{}, ErrDistributionNotFound
	}
	return dist, nil
}

// paginate applies skip/limit windowing to a slice
func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

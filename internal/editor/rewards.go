package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/nudj-platform/challenge-console/internal/models"
	"github.com/nudj-platform/challenge-console/pkg/client"
)

// placeholderImage is shown for allocations whose reward could not be
// resolved from the catalog
const placeholderImage = "/Person.png"

// AllocationRow is one selectable allocation, flattened out of its
// parent reward with the display name and image denormalized
type AllocationRow struct {
	ID             string
	RewardID       string
	AllocationType string
	Name           string
	Image          string
	Supply         int
	Distributed    int
	Amount         int
}

// RewardComposer owns the selection of reward allocations a challenge
// grants on completion, plus the two scalar giveaway amounts. Like the
// question editor, all mutation is local until Save.
type RewardComposer struct {
	api       RewardService
	challenge *models.Challenge

	mu       sync.Mutex
	state    EditorState
	catalog  []AllocationRow
	selected []AllocationRow
	bonusXP  int
	points   int
}

// NewRewardComposer creates an empty composer for a challenge
func NewRewardComposer(api RewardService, challenge *models.Challenge) *RewardComposer {
	return &RewardComposer{
		api:       api,
		challenge: challenge,
		state:     StateLoading,
	}
}

// State reports the composer lifecycle state
func (c *RewardComposer) State() EditorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// flattenReward expands a reward's allocations into standalone rows
func flattenReward(r models.Reward) []AllocationRow {
	image := r.Details.BannerURL
	if image == "" {
		image = placeholderImage
	}
	rows := make([]AllocationRow, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		rows = append(rows, AllocationRow{
			ID:             a.ID,
			RewardID:       r.ID,
			AllocationType: a.AllocationType,
			Name:           r.Details.Title,
			Image:          image,
			Supply:         a.Supply,
			Distributed:    a.Distributed,
			Amount:         a.AmountToDistribute,
		})
	}
	return rows
}

// Load fetches the reward catalog for the challenge's community, then
// the existing distribution config, and re-hydrates the selection by
// matching each persisted allocation against the flattened catalog.
// A challenge with no distribution yet loads with an empty selection.
func (c *RewardComposer) Load(ctx context.Context) error {
	page, err := c.api.ListRewards(ctx, models.RewardListOptions{
		CommunityID: c.challenge.CommunityID,
		Limit:       100,
	})
	if err != nil {
		c.mu.Lock()
		c.state = StateReady
		c.mu.Unlock()
		return fmt.Errorf("failed to fetch rewards: %w", err)
	}

	var rows []AllocationRow
	for _, r := range page.Edges {
		rows = append(rows, flattenReward(r)...)
	}

	var selected []AllocationRow
	var bonusXP, points int
	dist, err := c.api.GetDistribution(ctx, c.challenge.ID)
	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != 404 {
			c.mu.Lock()
			c.state = StateReady
			c.mu.Unlock()
			return fmt.Errorf("failed to fetch distribution: %w", err)
		}
		// No distribution assigned yet; start with an empty selection.
	} else {
		for _, entry := range dist.RewardsConfig.Allocations {
			row := AllocationRow{
				ID:             entry.ID,
				RewardID:       entry.RewardID,
				AllocationType: entry.AllocationType,
				Amount:         entry.AmountToDistribute,
				Image:          placeholderImage,
			}
			for _, r := range rows {
				if r.RewardID == entry.RewardID {
					row.Name = r.Name
					row.Image = r.Image
					row.Supply = r.Supply
					row.Distributed = r.Distributed
					break
				}
			}
			selected = append(selected, row)
		}
		bonusXP = dist.BonusXPToDistribute
		points = dist.PointsToDistribute
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = rows
	c.selected = selected
	c.bonusXP = bonusXP
	c.points = points
	c.state = StateReady
	return nil
}

// Catalog returns all allocation rows available in the community
func (c *RewardComposer) Catalog() []AllocationRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]AllocationRow, len(c.catalog))
	copy(out, c.catalog)
	return out
}

// Selected returns the current selection in insertion order
func (c *RewardComposer) Selected() []AllocationRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]AllocationRow, len(c.selected))
	copy(out, c.selected)
	return out
}

// Available returns the catalog rows not currently selected
func (c *RewardComposer) Available() []AllocationRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []AllocationRow
	for _, row := range c.catalog {
		if c.indexOf(row.ID) < 0 {
			out = append(out, row)
		}
	}
	return out
}

// Add selects a catalog allocation by id. Adding an id that is already
// selected, or unknown, is a no-op.
func (c *RewardComposer) Add(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(id) >= 0 {
		return false
	}
	for _, row := range c.catalog {
		if row.ID == id {
			c.selected = append(c.selected, row)
			return true
		}
	}
	return false
}

// Remove deselects an allocation by id
func (c *RewardComposer) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.selected = append(c.selected[:i], c.selected[i+1:]...)
	return true
}

// SetAmount sets the distribution amount for one selected allocation.
// Raw user input is coerced: non-numeric or negative values become 0.
func (c *RewardComposer) SetAmount(id, raw string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.selected[i].Amount = coerceAmount(raw)
	return true
}

// SetBonusXP sets the bonus XP giveaway amount
func (c *RewardComposer) SetBonusXP(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bonusXP = coerceAmount(raw)
}

// SetPoints sets the spendable points giveaway amount
func (c *RewardComposer) SetPoints(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = coerceAmount(raw)
}

// BonusXP returns the bonus XP giveaway amount
func (c *RewardComposer) BonusXP() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bonusXP
}

// Points returns the spendable points giveaway amount
func (c *RewardComposer) Points() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.points
}

// TotalAmount returns the sum of the selected distribution amounts
func (c *RewardComposer) TotalAmount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalAmount()
}

// Save sends the selection as one distribution-config document. A 2xx
// response without the echoed challenge id surfaces as
// client.ErrDistributionRejected.
func (c *RewardComposer) Save(ctx context.Context) (*models.Distribution, error) {
	c.mu.Lock()
	if c.state == StateSaving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	c.state = StateSaving

	allocations := make([]models.AllocationEntry, len(c.selected))
	for i, row := range c.selected {
		allocations[i] = models.AllocationEntry{
			AllocationType:     row.AllocationType,
			AmountToDistribute: row.Amount,
			RewardID:           row.RewardID,
			ID:                 row.ID,
		}
	}
	req := models.DistributionRequest{
		RewardsConfig: models.RewardsConfig{
			Mechanism:          models.MechanismSelect,
			AmountToDistribute: c.totalAmount(),
			Allocations:        allocations,
		},
		PointsToDistribute:  c.points,
		BonusXPToDistribute: c.bonusXP,
	}
	c.mu.Unlock()

	dist, err := c.api.AssignDistribution(ctx, c.challenge.ID, req)

	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()

	if err != nil {
		slog.Error("failed to assign distribution",
			"error", err,
			"challenge_id", c.challenge.ID,
		)
		return nil, err
	}
	return dist, nil
}

// totalAmount must be called with the mutex held
func (c *RewardComposer) totalAmount() int {
	sum := 0
	for _, row := range c.selected {
		sum += row.Amount
	}
	return sum
}

// indexOf must be called with the mutex held
func (c *RewardComposer) indexOf(id string) int {
	for i := range c.selected {
		if c.selected[i].ID == id {
			return i
		}
	}
	return -1
}

// coerceAmount parses raw numeric input, mapping anything unparseable
// or negative to 0
func coerceAmount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

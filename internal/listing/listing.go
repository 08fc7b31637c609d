// Package listing implements the server-driven paginated challenge list.
// Page index and size are client state; the total count comes from the
// backend. It is a pure read path, independent of the editors.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// DefaultPageSize matches the console's initial rows-per-page choice
const DefaultPageSize = 5

// PageSizes are the rows-per-page options offered to the user
var PageSizes = []int{5, 10, 20, 30, 40, 50}

// ChallengeLister is the slice of the admin API the list view depends on
type ChallengeLister interface {
	ListChallenges(ctx context.Context, opts models.ChallengeListOptions) (*models.ChallengePage, error)
}

// ListView holds the pagination state for the challenge table. It is
// scoped to one community; switching community bumps the generation so a
// stale in-flight page is discarded rather than overwriting fresh state.
type ListView struct {
	api ChallengeLister

	mu          sync.Mutex
	communityID string
	search      string
	pageIndex   int
	pageSize    int
	totalCount  int
	gen         uint64
	challenges  []models.Challenge
	loading     bool
}

// NewListView creates a list view for a community
func NewListView(api ChallengeLister, communityID string) *ListView {
	return &ListView{
		api:         api,
		communityID: communityID,
		pageSize:    DefaultPageSize,
	}
}

// Load fetches the current page. The request carries a 1-based page
// number and an item skip derived from the 0-based page index.
func (v *ListView) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.communityID == "" {
		v.mu.Unlock()
		return fmt.Errorf("no community selected")
	}
	opts := models.ChallengeListOptions{
		Page:        v.pageIndex + 1,
		Limit:       v.pageSize,
		Skip:        v.pageIndex * v.pageSize,
		CommunityID: v.communityID,
		Search:      v.search,
	}
	gen := v.gen
	v.loading = true
	v.mu.Unlock()

	page, err := v.api.ListChallenges(ctx, opts)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		return fmt.Errorf("failed to fetch challenges: %w", err)
	}
	if gen != v.gen {
		slog.Info("discarding stale challenge page", "community_id", opts.CommunityID)
		return nil
	}
	v.challenges = page.Edges
	v.totalCount = page.TotalCount
	return nil
}

// Challenges returns the rows of the current page
func (v *ListView) Challenges() []models.Challenge {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Challenge, len(v.challenges))
	copy(out, v.challenges)
	return out
}

// Loading reports whether a page fetch is in flight
func (v *ListView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// TotalCount returns the backend-reported total number of challenges
func (v *ListView) TotalCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalCount
}

// PageIndex returns the 0-based page index
func (v *ListView) PageIndex() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageIndex
}

// PageSize returns the current rows-per-page setting
func (v *ListView) PageSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageSize
}

// PageCount computes the number of pages for the known total
func (v *ListView) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return pageCount(v.totalCount, v.pageSize)
}

// CanPrev reports whether a previous page exists
func (v *ListView) CanPrev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageIndex > 0
}

// CanNext reports whether a further page exists
func (v *ListView) CanNext() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageIndex < pageCount(v.totalCount, v.pageSize)-1
}

// Prev moves to the previous page if one exists
func (v *ListView) Prev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pageIndex <= 0 {
		return false
	}
	v.pageIndex--
	return true
}

// Next moves to the next page if one exists
func (v *ListView) Next() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pageIndex >= pageCount(v.totalCount, v.pageSize)-1 {
		return false
	}
	v.pageIndex++
	return true
}

// SetPageSize changes the rows-per-page setting and resets to the first
// page, so a late page index can never turn into an out-of-range request
// against the smaller page count.
func (v *ListView) SetPageSize(size int) error {
	valid := false
	for _, s := range PageSizes {
		if s == size {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported page size: %d", size)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.pageSize = size
	v.pageIndex = 0
	return nil
}

// SetSearch sets the search term and resets to the first page
func (v *ListView) SetSearch(search string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if search == v.search {
		return
	}
	v.search = search
	v.pageIndex = 0
}

// SetCommunity switches the community scope, resetting pagination and
// invalidating any page fetch still in flight
func (v *ListView) SetCommunity(communityID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if communityID == v.communityID {
		return
	}
	v.communityID = communityID
	v.pageIndex = 0
	v.totalCount = 0
	v.challenges = nil
	v.gen++
}

// Summary renders the "Page X of Y" label shown next to the pager
func (v *ListView) Summary() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fmt.Sprintf("Page %d of %d", v.pageIndex+1, pageCount(v.totalCount, v.pageSize))
}

func pageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

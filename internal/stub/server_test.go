package stub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nudj-platform/challenge-console/internal/catalog"
	"github.com/nudj-platform/challenge-console/internal/editor"
	"github.com/nudj-platform/challenge-console/internal/listing"
	"github.com/nudj-platform/challenge-console/internal/models"
	"github.com/nudj-platform/challenge-console/internal/stub"
	"github.com/nudj-platform/challenge-console/pkg/client"
)

func newTestServer(t *testing.T) (*stub.Store, *client.Client) {
	t.Helper()
	store := stub.NewStore()
	server := httptest.NewServer(stub.NewServer(store).Router())
	t.Cleanup(server.Close)
	return store, client.NewClient(server.URL, "test-token")
}

func TestHealthEndpoint(t *testing.T) {
	store := stub.NewStore()
	server := httptest.NewServer(stub.NewServer(store).Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateChallengeValidation(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.CreateChallenge(ctx, models.ChallengeInput{})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation_error", apiErr.Code)

	_, err = c.CreateChallenge(ctx, models.ChallengeInput{CommunityID: "com-1"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "details.title")
}

func TestChallengeCRUDOverHTTP(t *testing.T) {
	store, c := newTestServer(t)
	store.AddCommunity(models.Community{ID: "com-1", OrganisationID: "org-1", Name: "Makers"})
	ctx := context.Background()

	created, err := c.CreateChallenge(ctx, models.ChallengeInput{
		CommunityID: "com-1",
		Details:     models.ChallengeDetails{Title: "Launch week"},
	})
	require.NoError(t, err)
	assert.Equal(t, "org-1", created.OrganisationID)

	got, err := c.GetChallenge(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch week", got.Details.Title)

	updated, err := c.UpdateChallenge(ctx, created.ID, models.ChallengeInput{
		CommunityID: "com-1",
		Details:     models.ChallengeDetails{Title: "Launch month"},
		Status:      models.StatusLive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusLive, updated.Status)

	require.NoError(t, c.DeleteChallenge(ctx, created.ID))

	_, err = c.GetChallenge(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestListViewAgainstStub(t *testing.T) {
	store, c := newTestServer(t)
	store.AddCommunity(models.Community{ID: "com-1", Name: "Makers"})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := c.CreateChallenge(ctx, models.ChallengeInput{
			CommunityID: "com-1",
			Details:     models.ChallengeDetails{Title: "Quest"},
		})
		require.NoError(t, err)
	}

	v := listing.NewListView(c, "com-1")
	require.NoError(t, v.Load(ctx))
	assert.Equal(t, 12, v.TotalCount())
	assert.Len(t, v.Challenges(), 5)
	assert.Equal(t, "Page 1 of 3", v.Summary())

	require.True(t, v.Next())
	require.True(t, v.Next())
	require.NoError(t, v.Load(ctx))
	assert.Len(t, v.Challenges(), 2)
	assert.False(t, v.CanNext())
}

func TestEditSessionAgainstStub(t *testing.T) {
	store, c := newTestServer(t)
	store.AddCommunity(models.Community{ID: "com-1", OrganisationID: "org-1", Name: "Makers"})
	store.AddReward(models.Reward{
		ID:          "r-1",
		CommunityID: "com-1",
		Details:     models.RewardDetails{Title: "Gift card"},
		Allocations: []models.Allocation{{ID: "alloc-1", AllocationType: "standard", Supply: 10}},
	})
	ctx := context.Background()

	ch, err := c.CreateChallenge(ctx, models.ChallengeInput{
		CommunityID: "com-1",
		Details:     models.ChallengeDetails{Title: "Quiz night"},
	})
	require.NoError(t, err)

	session := editor.NewEditSession(c, editor.Scope{OrganisationID: "org-1", CommunityID: "com-1"})
	require.NoError(t, session.Load(ctx, ch.ID))

	// Compose and save two questions
	questions, err := session.Questions()
	require.NoError(t, err)
	require.NoError(t, questions.Load(ctx))

	tmpl := catalog.Default().Questions[2]
	first := questions.Add(tmpl)
	require.NoError(t, questions.SetText(first, "What is our launch city?"))
	require.NoError(t, questions.SetAnswerText(first, 0, "Lisbon"))
	require.NoError(t, questions.AddOption(first))
	require.NoError(t, questions.SetAnswerText(first, 1, "Berlin"))

	second := questions.Add(tmpl)
	require.NoError(t, questions.SetText(second, "Which year did we start?"))
	require.NoError(t, questions.SetAnswerText(second, 0, "2021"))

	report, err := questions.Save(ctx)
	require.NoError(t, err)
	require.NoError(t, report.Err())

	// A fresh editor round-trips the saved questions. The two creates are
	// dispatched concurrently, so match by text rather than position.
	reloaded := editor.NewQuestionEditor(c, ch, "com-1")
	require.NoError(t, reloaded.Load(ctx))
	loaded := reloaded.Questions()
	require.Len(t, loaded, 2)
	var city *editor.Question
	for i := range loaded {
		if loaded[i].Text == "What is our launch city?" {
			city = &loaded[i]
		}
	}
	require.NotNil(t, city)
	assert.Equal(t, []editor.Answer{
		{Text: "Lisbon", Correct: true},
		{Text: "Berlin", Correct: false},
	}, city.Answers)
	assert.True(t, city.Persisted)

	// Compose and save the reward distribution
	rewards, err := session.Rewards()
	require.NoError(t, err)
	require.NoError(t, rewards.Load(ctx))
	assert.Empty(t, rewards.Selected())

	require.True(t, rewards.Add("alloc-1"))
	require.True(t, rewards.SetAmount("alloc-1", "4"))
	rewards.SetPoints("150")

	dist, err := rewards.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, ch.ID, dist.ChallengeID)

	// A fresh composer re-hydrates the persisted selection
	recomposed := editor.NewRewardComposer(c, ch)
	require.NoError(t, recomposed.Load(ctx))
	selected := recomposed.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "alloc-1", selected[0].ID)
	assert.Equal(t, "Gift card", selected[0].Name)
	assert.Equal(t, 4, selected[0].Amount)
	assert.Equal(t, 150, recomposed.Points())

	// Settings round trip through the same session
	settings, err := session.Settings()
	require.NoError(t, err)
	settings.SetTitle("Quiz night, renamed")
	saved, err := settings.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, ch.ID, saved.ID)

	got, err := c.GetChallenge(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiz night, renamed", got.Details.Title)
}

func TestUpdateUnknownActionOverHTTP(t *testing.T) {
	_, c := newTestServer(t)

	_, err := c.UpdateAction(context.Background(), "missing", models.ActionRequest{
		AllocationID: "ch-1",
		Key:          models.ActionKeyMultipleChoice,
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

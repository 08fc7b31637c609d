package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// ErrDistributionRejected is returned when the backend accepts the
// assign-distribution request at the transport level but does not echo
// the challenge id back, meaning the config was not applied.
var ErrDistributionRejected = errors.New("distribution was not assigned")

// APIError is an application-level error returned by the admin API
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: HTTP %d %s - %s", e.Status, e.Code, e.Message)
}

// Client is a Go SDK for the challenge admin API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new admin API client
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListChallenges retrieves a page of challenges for a community
func (c *Client) ListChallenges(ctx context.Context, opts models.ChallengeListOptions) (*models.ChallengePage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.CommunityID != "" {
		q.Set("communityId", opts.CommunityID)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/challenges?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page models.ChallengePage
	if err := json.Unmarshal(resp, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &page, nil
}

// GetChallenge retrieves a challenge by ID
func (c *Client) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/challenges/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var challenge models.Challenge
	if err := json.Unmarshal(resp, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &challenge, nil
}

// CreateChallenge creates a new challenge
func (c *Client) CreateChallenge(ctx context.Context, input models.ChallengeInput) (*models.Challenge, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/challenges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var challenge models.Challenge
	if err := json.Unmarshal(resp, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &challenge, nil
}

// UpdateChallenge updates an existing challenge. The admin API uses POST
// on the resource path for updates, not PUT or PATCH.
func (c *Client) UpdateChallenge(ctx context.Context, id string, input models.ChallengeInput) (*models.Challenge, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/challenges/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var challenge models.Challenge
	if err := json.Unmarshal(resp, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &challenge, nil
}

// DeleteChallenge removes a challenge
func (c *Client) DeleteChallenge(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/admin/challenges/"+url.PathEscape(id), nil)
	return err
}

// ListCommunities retrieves a page of communities
func (c *Client) ListCommunities(ctx context.Context, opts models.CommunityListOptions) (*models.CommunityPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/communities?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page models.CommunityPage
	if err := json.Unmarshal(resp, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &page, nil
}

// ListActions retrieves the actions attached to a challenge
func (c *Client) ListActions(ctx context.Context, opts models.ActionListOptions) (*models.ActionPage, error) {
	q := url.Values{}
	if opts.ChallengeID != "" {
		q.Set("challengeId", opts.ChallengeID)
	}
	if opts.CommunityID != "" {
		q.Set("communityId", opts.CommunityID)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/actions?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page models.ActionPage
	if err := json.Unmarshal(resp, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &page, nil
}

// CreateAction creates a new action
func (c *Client) CreateAction(ctx context.Context, req models.ActionRequest) (*models.Action, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/actions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var action models.Action
	if err := json.Unmarshal(resp, &action); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &action, nil
}

// UpdateAction updates an existing action. Like challenges, updates go
// through POST on the resource path.
func (c *Client) UpdateAction(ctx context.Context, id string, req models.ActionRequest) (*models.Action, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/actions/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var action models.Action
	if err := json.Unmarshal(resp, &action); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &action, nil
}

// ListRewards retrieves the reward catalog for a community
func (c *Client) ListRewards(ctx context.Context, opts models.RewardListOptions) (*models.RewardPage, error) {
	q := url.Values{}
	if opts.CommunityID != "" {
		q.Set("communityId", opts.CommunityID)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/rewards?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page models.RewardPage
	if err := json.Unmarshal(resp, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &page, nil
}

// GetDistribution retrieves the distribution config for a challenge
func (c *Client) GetDistribution(ctx context.Context, challengeID string) (*models.Distribution, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/challenges/"+url.PathEscape(challengeID)+"/distribution", nil)
	if err != nil {
		return nil, err
	}

	var dist models.Distribution
	if err := json.Unmarshal(resp, &dist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &dist, nil
}

// AssignDistribution assigns a distribution config to a challenge.
// Transport failure, application-level rejection and success are kept
// distinct: a 2xx response that does not echo the challenge id returns
// ErrDistributionRejected.
func (c *Client) AssignDistribution(ctx context.Context, challengeID string, req models.DistributionRequest) (*models.Distribution, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/challenges/"+url.PathEscape(challengeID)+"/distribution", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var dist models.Distribution
	if err := json.Unmarshal(resp, &dist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if dist.ChallengeID == "" {
		return nil, ErrDistributionRejected
	}

	return &dist, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	u := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		apiErr.Status = resp.StatusCode
		return nil, apiErr
	}

	return respBody, nil
}

// Package lens is the GraphQL API client. It implements the domain
// repository interfaces against a Lens API endpoint.
package lens

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lenscope/lenscope/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Lenscope/1.0"
)

// Client implements domain.AccountRepository, domain.FeedRepository,
// domain.InteractionRepository and domain.AuthRepository for the Lens API
type Client struct {
	endpoint   string
	appAddress string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Lens API client. appAddress scopes queries and
// logins to one registered app; it may be empty for global queries.
func NewClient(endpoint, appAddress string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		appAddress: appAddress,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetToken updates the access token attached to subsequent requests.
// An empty token reverts the client to unauthenticated queries.
func (c *Client) SetToken(token string) {
	c.token = token
}

// graphqlRequest is the POST body for every operation
type graphqlRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

// graphqlError is one entry of the response-level errors array
type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions,omitempty"`
}

// doRequest executes one GraphQL operation and decodes data into out
func (c *Client) doRequest(ctx context.Context, operation, query string, variables, out any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("lens request", "operation", operation)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("lens request failed", "operation", operation, "error", err)
		return domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrSessionExpired
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("lens request error", "operation", operation, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Error("JSON parse error", "operation", operation, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		c.logger.Error("lens operation error", "operation", operation, "message", first.Message, "code", first.Extensions.Code)
		if first.Extensions.Code == "UNAUTHENTICATED" {
			return domain.ErrAuthRequired
		}
		return fmt.Errorf("%s: %s", operation, first.Message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to parse %s data: %w", operation, err)
		}
	}
	return nil
}

// QueryAccounts returns one page of accounts for a paginated filter
func (c *Client) QueryAccounts(ctx context.Context, filter domain.AccountFilter, cursor string) (domain.AccountPage, error) {
	vars := map[string]any{
		"request": accountsRequest(filter, cursor),
	}
	var data struct {
		Accounts paginatedAccounts `json:"accounts"`
	}
	if err := c.doRequest(ctx, "Accounts", queryAccounts, vars, &data); err != nil {
		return domain.AccountPage{}, err
	}
	return domain.AccountPage{
		Items:      mapAccounts(data.Accounts.Items),
		NextCursor: data.Accounts.PageInfo.Next,
	}, nil
}

// QueryAccountsBulk returns the complete result set for a bulk filter
func (c *Client) QueryAccountsBulk(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	vars := map[string]any{
		"request": accountsBulkRequest(filter),
	}
	var data struct {
		AccountsBulk []accountDTO `json:"accountsBulk"`
	}
	if err := c.doRequest(ctx, "AccountsBulk", queryAccountsBulk, vars, &data); err != nil {
		return nil, err
	}
	return mapAccounts(data.AccountsBulk), nil
}

// QueryAccount returns a single account by address or local name
func (c *Client) QueryAccount(ctx context.Context, address, localName string) (domain.Account, error) {
	request := map[string]any{}
	switch {
	case address != "":
		request["address"] = address
	case localName != "":
		request["username"] = map[string]any{"localName": localName}
	default:
		return domain.Account{}, domain.ErrNotFound
	}

	var data struct {
		Account *accountDTO `json:"account"`
	}
	if err := c.doRequest(ctx, "Account", queryAccount, map[string]any{"request": request}, &data); err != nil {
		return domain.Account{}, err
	}
	if data.Account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return mapAccount(*data.Account), nil
}

// ResolveHandle resolves a local name to an account address
func (c *Client) ResolveHandle(ctx context.Context, localName string) (string, error) {
	account, err := c.QueryAccount(ctx, "", localName)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrHandleUnknown
	}
	if err != nil {
		return "", err
	}
	return account.Address, nil
}

// QueryAccountStats returns aggregate counters for an account
func (c *Client) QueryAccountStats(ctx context.Context, address string) (domain.AccountStats, error) {
	vars := map[string]any{
		"request": map[string]any{"account": address},
	}
	var data struct {
		AccountStats *accountStatsDTO `json:"accountStats"`
	}
	if err := c.doRequest(ctx, "AccountStats", queryAccountStats, vars, &data); err != nil {
		return domain.AccountStats{}, err
	}
	if data.AccountStats == nil {
		return domain.AccountStats{}, domain.ErrNotFound
	}
	return mapAccountStats(*data.AccountStats), nil
}

// QueryPosts returns one page of posts for a paginated filter
func (c *Client) QueryPosts(ctx context.Context, filter domain.PostFilter, cursor string) (domain.PostPage, error) {
	vars := map[string]any{
		"request": postsRequest(filter, cursor),
	}
	var data struct {
		Posts paginatedPosts `json:"posts"`
	}
	if err := c.doRequest(ctx, "Posts", queryPosts, vars, &data); err != nil {
		return domain.PostPage{}, err
	}
	return domain.PostPage{
		Items:      mapPosts(data.Posts.Items),
		NextCursor: data.Posts.PageInfo.Next,
	}, nil
}

// QueryPostsBulk returns the complete set of posts named by ID
func (c *Client) QueryPostsBulk(ctx context.Context, ids []string) ([]domain.Post, error) {
	vars := map[string]any{
		"request": map[string]any{"posts": ids},
	}
	var data struct {
		PostsBulk []postDTO `json:"postsBulk"`
	}
	if err := c.doRequest(ctx, "PostsBulk", queryPostsBulk, vars, &data); err != nil {
		return nil, err
	}
	return mapPosts(data.PostsBulk), nil
}

// QueryPost returns a single post by ID
func (c *Client) QueryPost(ctx context.Context, id string) (domain.Post, error) {
	vars := map[string]any{
		"request": map[string]any{"post": id},
	}
	var data struct {
		Post *postDTO `json:"post"`
	}
	if err := c.doRequest(ctx, "Post", queryPost, vars, &data); err != nil {
		return domain.Post{}, err
	}
	if data.Post == nil {
		return domain.Post{}, domain.ErrNotFound
	}
	return mapPost(*data.Post), nil
}

// Follow starts following an account
func (c *Client) Follow(ctx context.Context, accountAddress string) error {
	return c.mutate(ctx, "Follow", mutationFollow, map[string]any{
		"request": map[string]any{"account": accountAddress},
	})
}

// Unfollow stops following an account
func (c *Client) Unfollow(ctx context.Context, accountAddress string) error {
	return c.mutate(ctx, "Unfollow", mutationUnfollow, map[string]any{
		"request": map[string]any{"account": accountAddress},
	})
}

// Like adds an upvote reaction to a post
func (c *Client) Like(ctx context.Context, postID string) error {
	return c.mutate(ctx, "AddReaction", mutationAddReaction, map[string]any{
		"request": map[string]any{"post": postID, "reaction": "UPVOTE"},
	})
}

// Unlike removes an upvote reaction from a post
func (c *Client) Unlike(ctx context.Context, postID string) error {
	return c.mutate(ctx, "UndoReaction", mutationUndoReaction, map[string]any{
		"request": map[string]any{"post": postID, "reaction": "UPVOTE"},
	})
}

// Repost republishes a post under the session account
func (c *Client) Repost(ctx context.Context, postID string) error {
	return c.mutate(ctx, "Repost", mutationRepost, map[string]any{
		"request": map[string]any{"post": postID},
	})
}

// mutate runs a mutation whose result union may carry an application error
func (c *Client) mutate(ctx context.Context, operation, query string, vars map[string]any) error {
	if c.token == "" {
		return domain.ErrAuthRequired
	}

	var data map[string]mutationResult
	if err := c.doRequest(ctx, operation, query, vars, &data); err != nil {
		return err
	}
	for _, result := range data {
		if result.Reason != "" {
			c.logger.Warn("lens mutation rejected", "operation", operation, "reason", result.Reason)
			return fmt.Errorf("%s rejected: %s", operation, result.Reason)
		}
	}
	return nil
}

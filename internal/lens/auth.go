package lens

import (
	"context"
	"errors"
	"time"

	"github.com/lenscope/lenscope/internal/domain"
)

// RequestChallenge starts a wallet-approval login for an account address
// or handle. The user approves the returned code at the verify URL.
func (c *Client) RequestChallenge(ctx context.Context, account string) (domain.LoginChallenge, error) {
	request := map[string]any{"account": account}
	if c.appAddress != "" {
		request["app"] = c.appAddress
	}

	var data struct {
		Challenge challengeDTO `json:"challenge"`
	}
	if err := c.doRequest(ctx, "Challenge", mutationChallenge, map[string]any{"request": request}, &data); err != nil {
		return domain.LoginChallenge{}, err
	}

	c.logger.Info("login challenge issued", "id", data.Challenge.ID, "code", data.Challenge.Code)
	return domain.LoginChallenge{
		ID:        data.Challenge.ID,
		Code:      data.Challenge.Code,
		VerifyURL: data.Challenge.VerifyURL,
		ExpiresAt: data.Challenge.ExpiresAt,
	}, nil
}

// PollChallenge checks whether the challenge has been approved.
// Returns a zero session and nil error while approval is still pending.
func (c *Client) PollChallenge(ctx context.Context, challengeID string) (domain.Session, error) {
	vars := map[string]any{
		"request": map[string]any{"id": challengeID},
	}
	var data struct {
		ChallengeStatus struct {
			Status string         `json:"status"`
			Tokens *authTokensDTO `json:"tokens"`
		} `json:"challengeStatus"`
	}
	if err := c.doRequest(ctx, "ChallengeStatus", queryChallengeStatus, vars, &data); err != nil {
		return domain.Session{}, err
	}

	switch data.ChallengeStatus.Status {
	case "EXPIRED":
		return domain.Session{}, domain.ErrSessionExpired
	case "APPROVED":
		if data.ChallengeStatus.Tokens == nil {
			return domain.Session{}, errors.New("approved challenge carried no tokens")
		}
		c.logger.Info("login challenge approved")
		return mapSession(*data.ChallengeStatus.Tokens), nil
	default:
		return domain.Session{}, nil
	}
}

// Refresh exchanges a refresh token for a fresh session
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.Session, error) {
	vars := map[string]any{
		"request": map[string]any{"refreshToken": refreshToken},
	}
	var data struct {
		Refresh authTokensDTO `json:"refresh"`
	}
	if err := c.doRequest(ctx, "Refresh", mutationRefresh, vars, &data); err != nil {
		return domain.Session{}, err
	}
	if data.Refresh.Reason != "" || data.Refresh.AccessToken == "" {
		c.logger.Warn("session refresh rejected", "reason", data.Refresh.Reason)
		return domain.Session{}, domain.ErrSessionExpired
	}
	return mapSession(data.Refresh), nil
}

// Logout revokes the session server-side
func (c *Client) Logout(ctx context.Context, session domain.Session) error {
	c.SetToken(session.AccessToken)
	defer c.SetToken("")

	return c.doRequest(ctx, "RevokeAuthentication", mutationRevoke, map[string]any{
		"request": map[string]any{},
	}, nil)
}

// WaitForApproval polls the challenge with backoff until the user approves
// it in their wallet, the challenge expires, or the timeout elapses.
func (c *Client) WaitForApproval(ctx context.Context, challengeID string, timeout time.Duration) (domain.Session, error) {
	deadline := time.Now().Add(timeout)
	interval := 1 * time.Second
	maxInterval := 5 * time.Second

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return domain.Session{}, ctx.Err()
		case <-time.After(interval):
			session, err := c.PollChallenge(ctx, challengeID)
			if err != nil {
				if errors.Is(err, domain.ErrSessionExpired) {
					return domain.Session{}, err
				}
				c.logger.Warn("challenge poll error, retrying", "error", err)
				continue
			}

			if session.AccessToken != "" {
				return session, nil
			}

			interval = min(interval*2, maxInterval)
		}
	}

	return domain.Session{}, domain.ErrSessionExpired
}

func mapSession(tokens authTokensDTO) domain.Session {
	return domain.Session{
		AccountAddress: tokens.Account,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
		ExpiresAt:      tokens.ExpiresAt,
	}
}

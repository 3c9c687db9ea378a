package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/refbot/internal/log"
)

func (c *Client) homeRepository(ctx context.Context) (*gh.Repository, error) {
	log.Debug("fetching repository", "owner", c.owner, "repo", c.repo)

	repo, _, err := c.client.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", c.owner, c.repo, err)
	}
	return repo, nil
}

// StarCount returns the stargazer count of the home repository.
func (c *Client) StarCount(ctx context.Context) (int, error) {
	repo, err := c.homeRepository(ctx)
	if err != nil {
		return 0, err
	}
	return repo.GetStargazersCount(), nil
}

// ForkCount returns the fork count of the home repository.
func (c *Client) ForkCount(ctx context.Context) (int, error) {
	repo, err := c.homeRepository(ctx)
	if err != nil {
		return 0, err
	}
	return repo.GetForksCount(), nil
}

package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/model"
)

// searchPageSize is the number of hits requested per search. Autocomplete
// only shows the first page.
const searchPageSize = 25

// SearchIssues runs an issue search and returns the first page of hits.
func (c *Client) SearchIssues(ctx context.Context, query string) ([]model.SearchHit, error) {
	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{
			PerPage: searchPageSize,
		},
	}

	log.Trace("searching issues", "query", query)

	result, _, err := c.client.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	hits := make([]model.SearchHit, 0, len(result.Issues))
	for _, issue := range result.Issues {
		hits = append(hits, model.SearchHit{
			Number:        issue.GetNumber(),
			Title:         issue.GetTitle(),
			IsPullRequest: issue.IsPullRequest(),
		})
	}
	return hits, nil
}

// IssueURL looks up an issue or pull request and returns its web URL.
// Pull requests get their /pull/ URL.
func (c *Client) IssueURL(ctx context.Context, owner, repo string, number int) (string, error) {
	log.Debug("looking up issue", "owner", owner, "repo", repo, "number", number)

	issue, _, err := c.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return "", fmt.Errorf("failed to get %s/%s#%d: %w", owner, repo, number, err)
	}

	url := issue.GetHTMLURL()
	if url == "" {
		return "", fmt.Errorf("no URL for %s/%s#%d", owner, repo, number)
	}
	return url, nil
}

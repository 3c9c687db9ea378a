package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/refbot/internal/constants"
	"github.com/spiffcs/refbot/internal/log"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned when no GitHub token is available.
var ErrNoToken = errors.New("GitHub token not provided. Set the GITHUB_TOKEN environment variable")

// rateLimitTransport wraps an http.RoundTripper to track GitHub rate limits
// per API resource. Requests against an exhausted resource fail with
// ErrRateLimited without reaching the network until the limit resets.
type rateLimitTransport struct {
	base   http.RoundTripper
	states map[string]*RateLimitState
}

func newRateLimitTransport(base http.RoundTripper) *rateLimitTransport {
	return &rateLimitTransport{
		base: base,
		states: map[string]*RateLimitState{
			resourceCore:   {},
			resourceSearch: {},
		},
	}
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resource := resourceFor(req.URL.Path)

	// The rate limit endpoint does not count against any quota.
	var state *RateLimitState
	if resource != "" {
		state = t.states[resource]
		if state.IsLimited() {
			log.Debug("skipping request while rate limited", "resource", resource, "path", req.URL.Path)
			return nil, fmt.Errorf("%w: %s quota exhausted", ErrRateLimited, resource)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || state == nil {
		return resp, err
	}

	// Parse and update rate limit state from response headers
	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		state.Update(remaining, limit, resetAt)
	}

	if remaining <= constants.RateLimitLowWatermark && remaining > 0 {
		log.Debug("rate limit low", "resource", resource, "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	// Handle rate limit responses (403 with rate limit exceeded or 429)
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			if resetAt.IsZero() {
				resetAt = time.Now().Add(time.Minute)
			}
			state.SetLimited(true, resetAt)
			_ = resp.Body.Close()
			return nil, ErrRateLimited
		}
	}

	return resp, nil
}

const (
	resourceCore   = "core"
	resourceSearch = "search"
)

// resourceFor maps an API path to the quota it is charged against. The rate
// limit endpoint maps to "".
func resourceFor(path string) string {
	path = strings.TrimPrefix(path, "/api/v3")
	switch {
	case path == "/rate_limit":
		return ""
	case strings.HasPrefix(path, "/search/"):
		return resourceSearch
	default:
		return resourceCore
	}
}

// parseRateLimitHeaders extracts rate limit info from response headers.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = -1
	limit = -1

	if remainingStr := resp.Header.Get("X-RateLimit-Remaining"); remainingStr != "" {
		if rem, err := strconv.Atoi(remainingStr); err == nil {
			remaining = rem
		}
	}

	if limitStr := resp.Header.Get("X-RateLimit-Limit"); limitStr != "" {
		if lim, err := strconv.Atoi(limitStr); err == nil {
			limit = lim
		}
	}

	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if resetTime, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(resetTime, 0)
		}
	}

	return remaining, limit, resetAt
}

// Client wraps the GitHub API client and implements the search, link and
// counter capabilities for one home repository.
type Client struct {
	client    *gh.Client
	transport *rateLimitTransport
	owner     string
	repo      string
}

// Option configures a Client.
type Option func(*Client) error

// WithHome sets the repository whose counters are reported.
func WithHome(owner, repo string) Option {
	return func(c *Client) error {
		c.owner = owner
		c.repo = repo
		return nil
	}
}

// WithBaseURL points the client at a different API endpoint, such as a
// GitHub Enterprise server or a test server.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", rawURL, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// NewClient creates a new GitHub client using a personal access token.
// An empty token falls back to GITHUB_TOKEN.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, ErrNoToken
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return newClient(oauth2.NewClient(ctx, ts), opts...)
}

// NewAnonymousClient creates a client without credentials. Unauthenticated
// requests get a much smaller rate limit.
func NewAnonymousClient(opts ...Option) (*Client, error) {
	return newClient(&http.Client{}, opts...)
}

func newClient(hc *http.Client, opts ...Option) (*Client, error) {
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := newRateLimitTransport(base)
	hc.Transport = transport

	c := &Client{
		client:    gh.NewClient(hc),
		transport: transport,
		owner:     constants.DefaultHomeOwner,
		repo:      constants.DefaultHomeRepo,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RateLimit is the quota of one GitHub API resource.
type RateLimit struct {
	Resource  string    `json:"resource"`
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	ResetAt   time.Time `json:"reset_at"`
}

// RateLimits fetches the current GitHub API rate limit status for the core
// and search resources.
func (c *Client) RateLimits(ctx context.Context) ([]RateLimit, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}

	var result []RateLimit
	for _, r := range []struct {
		name string
		rate *gh.Rate
	}{
		{resourceCore, limits.GetCore()},
		{resourceSearch, limits.GetSearch()},
	} {
		if r.rate == nil {
			continue
		}
		result = append(result, RateLimit{
			Resource:  r.name,
			Remaining: r.rate.Remaining,
			Limit:     r.rate.Limit,
			ResetAt:   r.rate.Reset.Time,
		})
	}
	return result, nil
}

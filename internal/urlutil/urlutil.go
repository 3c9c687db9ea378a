// Package urlutil provides GitHub URL building and parsing utilities.
package urlutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when a value is not a positive issue number.
var ErrInvalidNumber = errors.New("invalid issue number")

// DefaultWebBaseURL is the GitHub web origin used for built links.
const DefaultWebBaseURL = "https://github.com"

// IssueURL builds the web URL of an issue. GitHub redirects /issues/N to
// /pull/N when N is a pull request, so the link is valid for both.
func IssueURL(base, owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s/%s/issues/%d", strings.TrimSuffix(base, "/"), owner, repo, number)
}

// ParseNumber parses a positive decimal issue number such as an
// autocomplete value. A leading "#" is accepted.
func ParseNumber(value string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}
	return n, nil
}

// StaticLinker builds issue links without calling the GitHub API. It never
// fails and does not check that the issue exists.
type StaticLinker struct {
	BaseURL string
}

// NewStaticLinker creates a StaticLinker for github.com.
func NewStaticLinker() *StaticLinker {
	return &StaticLinker{BaseURL: DefaultWebBaseURL}
}

// IssueURL returns the web URL for owner/repo#number.
func (l *StaticLinker) IssueURL(_ context.Context, owner, repo string, number int) (string, error) {
	base := l.BaseURL
	if base == "" {
		base = DefaultWebBaseURL
	}
	return IssueURL(base, owner, repo, number), nil
}

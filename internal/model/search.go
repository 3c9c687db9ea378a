package model

import (
	"fmt"
	"strconv"
)

// SearchHit is a raw issue search result.
type SearchHit struct {
	Number int
	Title  string

	// IsPullRequest mirrors the presence of the pull_request marker on
	// the GitHub search item.
	IsPullRequest bool
}

// ResultKind classifies a search result.
type ResultKind string

const (
	KindPullRequest ResultKind = "PR"
	KindIssue       ResultKind = "Issue"
)

// SearchResultItem is a classified search hit.
type SearchResultItem struct {
	Kind   ResultKind `json:"kind"`
	Number int        `json:"number"`
	Title  string     `json:"title"`
}

// NewSearchResultItem classifies a hit by its pull request marker.
func NewSearchResultItem(hit SearchHit) SearchResultItem {
	kind := KindIssue
	if hit.IsPullRequest {
		kind = KindPullRequest
	}
	return SearchResultItem{
		Kind:   kind,
		Number: hit.Number,
		Title:  hit.Title,
	}
}

// Label returns "[Kind] (number) title".
func (s SearchResultItem) Label() string {
	return fmt.Sprintf("[%s] (%d) %s", s.Kind, s.Number, s.Title)
}

// Choice is an autocomplete entry. Value is usable as a later lookup key.
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Choice converts the item to an autocomplete choice.
func (s SearchResultItem) Choice() Choice {
	return Choice{
		Name:  s.Label(),
		Value: strconv.Itoa(s.Number),
	}
}

package references

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spiffcs/refbot/internal/constants"
	"github.com/spiffcs/refbot/internal/format"
	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/model"
	"github.com/spiffcs/refbot/internal/urlutil"
)

// ErrNoSearcher is returned when autocomplete is used without a Searcher.
var ErrNoSearcher = errors.New("no search capability configured")

// SearchQuery builds the title search query scoped to the home repository.
func (r *Resolver) SearchQuery(fragment string) string {
	return fmt.Sprintf("repo:%s/%s in:title %s", r.HomeOwner(), r.HomeRepo(), fragment)
}

// Search returns the classified hits for a title fragment in the home
// repository.
func (r *Resolver) Search(ctx context.Context, fragment string) ([]model.SearchResultItem, error) {
	if r.searcher == nil {
		return nil, ErrNoSearcher
	}

	hits, err := r.searcher.SearchIssues(ctx, r.SearchQuery(fragment))
	if err != nil {
		return nil, err
	}

	items := make([]model.SearchResultItem, 0, len(hits))
	for _, hit := range hits {
		items = append(items, model.NewSearchResultItem(hit))
	}
	return items, nil
}

// SearchAutocomplete returns choices for a partially typed issue title.
// Blank input returns no choices without searching, and a failed search
// returns no choices.
func (r *Resolver) SearchAutocomplete(ctx context.Context, fragment string) []model.Choice {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []model.Choice{}
	}

	items, err := r.Search(ctx, fragment)
	if err != nil {
		log.Warn("autocomplete search failed", "query", fragment, "error", err)
		return []model.Choice{}
	}

	if len(items) > constants.MaxAutocompleteChoices {
		items = items[:constants.MaxAutocompleteChoices]
	}

	choices := make([]model.Choice, 0, len(items))
	for _, item := range items {
		choice := item.Choice()
		choice.Name = format.Truncate(choice.Name, constants.MaxChoiceNameLength)
		choices = append(choices, choice)
	}
	return choices
}

// LinkForNumber resolves an autocomplete value to the URL of that issue or
// pull request in the home repository.
func (r *Resolver) LinkForNumber(ctx context.Context, value string) (string, error) {
	number, err := urlutil.ParseNumber(value)
	if err != nil {
		return "", err
	}
	return r.linker.IssueURL(ctx, r.HomeOwner(), r.HomeRepo(), number)
}

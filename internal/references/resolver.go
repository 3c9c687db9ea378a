// Package references resolves issue and pull request shorthand found in chat
// messages to GitHub URLs and serves issue search autocomplete.
package references

import (
	"context"

	"github.com/spiffcs/refbot/internal/constants"
	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/model"
	"golang.org/x/sync/errgroup"
)

// Linker resolves a reference to its canonical URL.
type Linker interface {
	IssueURL(ctx context.Context, owner, repo string, number int) (string, error)
}

// Searcher runs an issue search query.
type Searcher interface {
	SearchIssues(ctx context.Context, query string) ([]model.SearchHit, error)
}

// Resolver turns chat text into issue and pull request URLs.
type Resolver struct {
	extractor *Extractor
	linker    Linker
	searcher  Searcher
	workers   int
}

// Option is a functional option for configuring a Resolver.
type Option func(*Resolver)

// WithHome sets the owner and repository assumed by unqualified references.
func WithHome(owner, repo string) Option {
	return func(r *Resolver) {
		r.extractor.HomeOwner = owner
		r.extractor.HomeRepo = repo
	}
}

// WithMinBareNumber sets the threshold below which bare "#N" references are
// ignored.
func WithMinBareNumber(n int) Option {
	return func(r *Resolver) {
		r.extractor.MinBareNumber = n
	}
}

// WithWorkers bounds the number of concurrent lookups per message.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithSearcher sets the search capability used by SearchAutocomplete.
func WithSearcher(s Searcher) Option {
	return func(r *Resolver) {
		r.searcher = s
	}
}

// NewResolver creates a Resolver that looks up URLs through linker.
func NewResolver(linker Linker, opts ...Option) *Resolver {
	r := &Resolver{
		extractor: NewExtractor(),
		linker:    linker,
		workers:   constants.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HomeOwner returns the owner assumed by unqualified references.
func (r *Resolver) HomeOwner() string {
	return r.extractor.HomeOwner
}

// HomeRepo returns the repository assumed by unqualified references.
func (r *Resolver) HomeRepo() string {
	return r.extractor.HomeRepo
}

// Extract returns the references in text that ResolveReferences would look up.
func (r *Resolver) Extract(text string) []model.Reference {
	return r.extractor.Extract(text)
}

// ResolveReferences returns the URL of every reference in text, in order of
// appearance and including duplicates. Lookups run concurrently. A failed
// lookup is logged and its URL left out; the call itself never fails.
func (r *Resolver) ResolveReferences(ctx context.Context, text string) []string {
	refs := r.extractor.Extract(text)
	if len(refs) == 0 {
		return []string{}
	}

	log.Debug("resolving references", "count", len(refs))

	urls := make([]string, len(refs))
	resolved := make([]bool, len(refs))

	var g errgroup.Group
	g.SetLimit(r.workers)

	for i, ref := range refs {
		g.Go(func() error {
			url, err := r.linker.IssueURL(ctx, ref.Owner, ref.Repo, ref.Number)
			if err != nil {
				log.Warn("failed to resolve reference", "ref", ref.String(), "error", err)
				return nil
			}
			log.Trace("resolved reference", "ref", ref.String(), "url", url)
			urls[i] = url
			resolved[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(refs))
	for i, url := range urls {
		if resolved[i] {
			out = append(out, url)
		}
	}
	return out
}

// Package service maps chat events onto the reference resolver and the
// stat tracker. Every method returns something postable; failures become
// reply text or empty results.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/model"
	"github.com/spiffcs/refbot/internal/references"
	"github.com/spiffcs/refbot/internal/stats"
)

// Service dispatches chat events.
type Service struct {
	resolver *references.Resolver
	tracker  *stats.Tracker
}

// New creates a Service. A nil tracker disables the metric commands.
func New(resolver *references.Resolver, tracker *stats.Tracker) *Service {
	return &Service{
		resolver: resolver,
		tracker:  tracker,
	}
}

// Resolver returns the underlying reference resolver.
func (s *Service) Resolver() *references.Resolver {
	return s.resolver
}

// HandleMessage returns the links to post in reply to a chat message.
// The result is empty when the message has no resolvable references.
func (s *Service) HandleMessage(ctx context.Context, channel, content string) []string {
	links := s.resolver.ResolveReferences(ctx, content)
	if len(links) > 0 {
		log.Debug("resolved references", "channel", channel, "links", len(links))
	}
	return links
}

// Metric returns the reply to a stars or forks command in channel.
func (s *Service) Metric(ctx context.Context, kind model.MetricKind, channel string) string {
	if s.tracker == nil {
		return stats.FailureMessage(kind)
	}
	return s.tracker.MetricMessage(ctx, kind, channel)
}

// ForgetMetric drops the remembered value of kind in channel, so the next
// reply carries no delta.
func (s *Service) ForgetMetric(kind model.MetricKind, channel string) {
	if s.tracker == nil {
		return
	}
	s.tracker.Store().Forget(stats.Key{Kind: kind, Channel: channel})
}

// Stars returns the reply to the stars command.
func (s *Service) Stars(ctx context.Context, channel string) string {
	return s.Metric(ctx, model.MetricStars, channel)
}

// Forks returns the reply to the forks command.
func (s *Service) Forks(ctx context.Context, channel string) string {
	return s.Metric(ctx, model.MetricForks, channel)
}

// Autocomplete returns the choices for a partially typed search.
func (s *Service) Autocomplete(ctx context.Context, fragment string) []model.Choice {
	return s.resolver.SearchAutocomplete(ctx, fragment)
}

// Select returns the reply for a chosen search result: the link, or a
// message saying the item could not be found.
func (s *Service) Select(ctx context.Context, value string) string {
	url, err := s.resolver.LinkForNumber(ctx, value)
	if err != nil {
		log.Warn("search selection failed", "value", value, "error", err)
		return NotFoundMessage(value)
	}
	return url
}

// NotFoundMessage is the reply for a selection that could not be resolved.
func NotFoundMessage(value string) string {
	return fmt.Sprintf("Could not find issue or PR #%s", strings.TrimPrefix(strings.TrimSpace(value), "#"))
}

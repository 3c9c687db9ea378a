package model

import (
	"fmt"

	"github.com/spiffcs/refbot/internal/constants"
)

// MetricKind represents which repository counter is tracked.
type MetricKind string

const (
	MetricStars MetricKind = "stars"
	MetricForks MetricKind = "forks"
)

// AllMetricKinds contains all valid metric kinds.
var AllMetricKinds = []MetricKind{
	MetricStars,
	MetricForks,
}

// Label returns the message prefix for the metric.
func (k MetricKind) Label() string {
	switch k {
	case MetricStars:
		return constants.StarsLabel
	case MetricForks:
		return constants.ForksLabel
	default:
		return string(k)
	}
}

// Unit returns the noun used in delta clauses.
func (k MetricKind) Unit() string {
	switch k {
	case MetricStars:
		return constants.StarsUnit
	case MetricForks:
		return constants.ForksUnit
	default:
		return string(k)
	}
}

// ParseMetricKind parses a metric kind name.
func ParseMetricKind(s string) (MetricKind, error) {
	for _, k := range AllMetricKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown metric kind: %q (must be stars or forks)", s)
}

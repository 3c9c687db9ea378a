package model

import (
	"strconv"
	"testing"
)

func TestMetricKindText(t *testing.T) {
	tests := []struct {
		kind  MetricKind
		label string
		unit  string
	}{
		{MetricStars, "Stars ⭐", "stars"},
		{MetricForks, "Forks", "forks"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.kind.Unit(); got != tt.unit {
				t.Errorf("Unit() = %q, want %q", got, tt.unit)
			}
		})
	}
}

func TestParseMetricKind(t *testing.T) {
	for _, k := range AllMetricKinds {
		got, err := ParseMetricKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseMetricKind(%q) = %q, %v", k, got, err)
		}
	}

	if _, err := ParseMetricKind("watchers"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSearchResultItem(t *testing.T) {
	tests := []struct {
		name  string
		hit   SearchHit
		label string
	}{
		{"pull request", SearchHit{Number: 4242, Title: "feat: map", IsPullRequest: true}, "[PR] (4242) feat: map"},
		{"issue", SearchHit{Number: 17, Title: "Crash"}, "[Issue] (17) Crash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewSearchResultItem(tt.hit)
			choice := item.Choice()
			if choice.Name != tt.label {
				t.Errorf("Name = %q, want %q", choice.Name, tt.label)
			}
			if choice.Value != strconv.Itoa(tt.hit.Number) {
				t.Errorf("Value = %q", choice.Value)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	r := Reference{Owner: "octokit", Repo: "rest.js", Number: 7}
	if r.String() != "octokit/rest.js#7" {
		t.Errorf("String() = %q", r.String())
	}
}

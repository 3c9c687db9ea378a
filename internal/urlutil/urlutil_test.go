package urlutil

import (
	"context"
	"errors"
	"testing"
)

func TestIssueURL(t *testing.T) {
	tests := []struct {
		base   string
		owner  string
		repo   string
		number int
		want   string
	}{
		{"https://github.com", "immich-app", "immich", 4242, "https://github.com/immich-app/immich/issues/4242"},
		{"https://github.com/", "octokit", "rest.js", 12, "https://github.com/octokit/rest.js/issues/12"},
		{"https://ghe.example.com", "org", "repo", 1, "https://ghe.example.com/org/repo/issues/1"},
	}

	for _, tt := range tests {
		got := IssueURL(tt.base, tt.owner, tt.repo, tt.number)
		if got != tt.want {
			t.Errorf("IssueURL(%q, %q, %q, %d) = %q, want %q", tt.base, tt.owner, tt.repo, tt.number, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"4242", 4242, false},
		{"#17", 17, false},
		{"  99 ", 99, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidNumber) {
					t.Errorf("ParseNumber(%q) error = %v, want ErrInvalidNumber", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumber(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumber(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestStaticLinker(t *testing.T) {
	l := NewStaticLinker()
	got, err := l.IssueURL(context.Background(), "immich-app", "static-pages", 4242)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://github.com/immich-app/static-pages/issues/4242" {
		t.Errorf("unexpected URL %q", got)
	}

	empty := &StaticLinker{}
	got, _ = empty.IssueURL(context.Background(), "a", "b", 1)
	if got != "https://github.com/a/b/issues/1" {
		t.Errorf("expected default base URL, got %q", got)
	}
}

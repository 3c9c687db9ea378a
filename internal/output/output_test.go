package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spiffcs/refbot/internal/ghclient"
	"github.com/spiffcs/refbot/internal/model"
)

func init() {
	color.NoColor = true
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter for json")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("expected TextFormatter for text")
	}
	if _, ok := NewFormatter("unknown").(*TextFormatter); !ok {
		t.Error("expected TextFormatter fallback")
	}
}

func TestTextFormatLinks(t *testing.T) {
	tests := []struct {
		name  string
		links []string
		want  string
	}{
		{"none", nil, "No references found.\n"},
		{
			"several",
			[]string{"https://github.com/immich-app/immich/issues/4242", "https://github.com/octokit/rest.js/pull/7"},
			"https://github.com/immich-app/immich/issues/4242\nhttps://github.com/octokit/rest.js/pull/7\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TextFormatter{}).FormatLinks(tt.links, &buf); err != nil {
				t.Fatalf("FormatLinks() error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatLinks() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTextFormatReferences(t *testing.T) {
	refs := []model.Reference{
		{Owner: "immich-app", Repo: "immich", Number: 4242},
		{Owner: "octokit", Repo: "rest.js", Number: 7, Qualified: true},
	}

	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatReferences(refs, &buf); err != nil {
		t.Fatalf("FormatReferences() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "immich-app/immich#4242  bare" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "octokit/rest.js#7       qualified" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestTextFormatChoices(t *testing.T) {
	var buf bytes.Buffer
	choices := []model.Choice{
		{Name: "[PR] (4242) Map view", Value: "4242"},
		{Name: "[Issue] (17) Crash", Value: "17"},
	}
	if err := (&TextFormatter{}).FormatChoices(choices, &buf); err != nil {
		t.Fatalf("FormatChoices() error: %v", err)
	}
	if buf.String() != "[PR] (4242) Map view\n[Issue] (17) Crash\n" {
		t.Errorf("FormatChoices() = %q", buf.String())
	}

	buf.Reset()
	_ = (&TextFormatter{}).FormatChoices(nil, &buf)
	if buf.String() != "No matches.\n" {
		t.Errorf("empty FormatChoices() = %q", buf.String())
	}
}

func TestTextFormatRateLimits(t *testing.T) {
	var buf bytes.Buffer
	limits := []ghclient.RateLimit{
		{Resource: "core", Remaining: 4000, Limit: 5000, ResetAt: time.Now().Add(-time.Minute)},
	}
	if err := (&TextFormatter{}).FormatRateLimits(limits, &buf); err != nil {
		t.Fatalf("FormatRateLimits() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Core:    4000/5000 remaining (resets in 0s)") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	f := &JSONFormatter{}

	tests := []struct {
		name string
		run  func(*bytes.Buffer) error
		want string
	}{
		{
			"empty links",
			func(b *bytes.Buffer) error { return f.FormatLinks(nil, b) },
			`{"links":[]}`,
		},
		{
			"links",
			func(b *bytes.Buffer) error { return f.FormatLinks([]string{"https://example.com/1"}, b) },
			`{"links":["https://example.com/1"]}`,
		},
		{
			"references",
			func(b *bytes.Buffer) error {
				return f.FormatReferences([]model.Reference{{Owner: "o", Repo: "r", Number: 1, Qualified: true}}, b)
			},
			`{"references":[{"owner":"o","repo":"r","number":1,"qualified":true}]}`,
		},
		{
			"choices",
			func(b *bytes.Buffer) error {
				return f.FormatChoices([]model.Choice{{Name: "[PR] (1) x", Value: "1"}}, b)
			},
			`{"choices":[{"name":"[PR] (1) x","value":"1"}]}`,
		},
		{
			"message",
			func(b *bytes.Buffer) error { return f.FormatMessage("Forks: 3", b) },
			`{"message":"Forks: 3"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.run(&buf); err != nil {
				t.Fatalf("format error: %v", err)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSONFormatterPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{Pretty: true}).FormatMessage("hi", &buf); err != nil {
		t.Fatalf("FormatMessage() error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["message"] != "hi" || !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("unexpected pretty output %q", buf.String())
	}
}

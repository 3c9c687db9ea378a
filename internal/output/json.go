package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/refbot/internal/ghclient"
	"github.com/spiffcs/refbot/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

type referenceOutput struct {
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	Number    int    `json:"number"`
	Qualified bool   `json:"qualified"`
}

type choiceOutput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// FormatLinks outputs resolved links as {"links": [...]}
func (f *JSONFormatter) FormatLinks(links []string, w io.Writer) error {
	if links == nil {
		links = []string{}
	}
	return f.encode(w, map[string][]string{"links": links})
}

// FormatReferences outputs extracted references as {"references": [...]}
func (f *JSONFormatter) FormatReferences(refs []model.Reference, w io.Writer) error {
	out := make([]referenceOutput, 0, len(refs))
	for _, r := range refs {
		out = append(out, referenceOutput{
			Owner:     r.Owner,
			Repo:      r.Repo,
			Number:    r.Number,
			Qualified: r.Qualified,
		})
	}
	return f.encode(w, map[string][]referenceOutput{"references": out})
}

// FormatChoices outputs autocomplete choices as {"choices": [...]}
func (f *JSONFormatter) FormatChoices(choices []model.Choice, w io.Writer) error {
	out := make([]choiceOutput, 0, len(choices))
	for _, c := range choices {
		out = append(out, choiceOutput{Name: c.Name, Value: c.Value})
	}
	return f.encode(w, map[string][]choiceOutput{"choices": out})
}

// FormatMessage outputs a chat reply as {"message": "..."}
func (f *JSONFormatter) FormatMessage(message string, w io.Writer) error {
	return f.encode(w, map[string]string{"message": message})
}

// FormatRateLimits outputs rate limit status as {"rate_limits": [...]}
func (f *JSONFormatter) FormatRateLimits(limits []ghclient.RateLimit, w io.Writer) error {
	if limits == nil {
		limits = []ghclient.RateLimit{}
	}
	return f.encode(w, map[string][]ghclient.RateLimit{"rate_limits": limits})
}

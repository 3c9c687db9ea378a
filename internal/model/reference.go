// Package model contains domain types for refbot.
// These types are independent of any external GitHub library.
package model

import "fmt"

// Reference is a shorthand mention of an issue or pull request found in
// chat text, with owner and repo already defaulted to the home repository.
type Reference struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int    `json:"number"`

	// Qualified is true when the text carried a repo prefix
	// ("repo#N" or "owner/repo#N").
	Qualified bool `json:"qualified"`

	// Start and End are byte offsets of the token in the source text.
	Start int `json:"-"`
	End   int `json:"-"`
}

// String returns the canonical "owner/repo#N" form.
func (r Reference) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

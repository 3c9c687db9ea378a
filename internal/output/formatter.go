package output

import (
	"io"

	"github.com/spiffcs/refbot/internal/ghclient"
	"github.com/spiffcs/refbot/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	FormatLinks(links []string, w io.Writer) error
	FormatReferences(refs []model.Reference, w io.Writer) error
	FormatChoices(choices []model.Choice, w io.Writer) error
	FormatMessage(message string, w io.Writer) error
	FormatRateLimits(limits []ghclient.RateLimit, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	default:
		return &TextFormatter{}
	}
}

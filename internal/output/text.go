package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spiffcs/refbot/internal/format"
	"github.com/spiffcs/refbot/internal/ghclient"
	"github.com/spiffcs/refbot/internal/model"
	"golang.org/x/term"
)

// TextFormatter formats output for a terminal
type TextFormatter struct{}

// hyperlink creates a clickable terminal hyperlink using OSC 8 when w is a
// terminal.
func hyperlink(w io.Writer, text, url string) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// FormatLinks prints one link per line
func (f *TextFormatter) FormatLinks(links []string, w io.Writer) error {
	if len(links) == 0 {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("No references found."))
		return err
	}
	for _, link := range links {
		if _, err := fmt.Fprintln(w, hyperlink(w, link, link)); err != nil {
			return err
		}
	}
	return nil
}

// FormatReferences prints extracted references as an aligned list
func (f *TextFormatter) FormatReferences(refs []model.Reference, w io.Writer) error {
	if len(refs) == 0 {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("No references found."))
		return err
	}

	width := 0
	for _, r := range refs {
		if n := format.DisplayWidth(r.String()); n > width {
			width = n
		}
	}

	for _, r := range refs {
		kind := "bare"
		if r.Qualified {
			kind = color.CyanString("qualified")
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", format.PadRight(r.String(), format.DisplayWidth(r.String()), width), kind); err != nil {
			return err
		}
	}
	return nil
}

// FormatChoices prints autocomplete choices with their values
func (f *TextFormatter) FormatChoices(choices []model.Choice, w io.Writer) error {
	if len(choices) == 0 {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("No matches."))
		return err
	}
	for _, c := range choices {
		name := c.Name
		switch {
		case strings.HasPrefix(name, "[PR]"):
			name = color.GreenString("[PR]") + strings.TrimPrefix(name, "[PR]")
		case strings.HasPrefix(name, "[Issue]"):
			name = color.YellowString("[Issue]") + strings.TrimPrefix(name, "[Issue]")
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// FormatMessage prints a chat reply
func (f *TextFormatter) FormatMessage(message string, w io.Writer) error {
	_, err := fmt.Fprintln(w, message)
	return err
}

// FormatRateLimits prints remaining quota and reset time per resource
func (f *TextFormatter) FormatRateLimits(limits []ghclient.RateLimit, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "GitHub API Rate Limits:"); err != nil {
		return err
	}
	fmt.Fprintln(w)

	for _, l := range limits {
		resetIn := time.Until(l.ResetAt).Round(time.Second)
		if resetIn < 0 {
			resetIn = 0
		}

		remaining := fmt.Sprintf("%d/%d", l.Remaining, l.Limit)
		if l.Remaining == 0 {
			remaining = color.RedString(remaining)
		}

		label := l.Resource + ":"
		if l.Resource != "" {
			label = strings.ToUpper(l.Resource[:1]) + l.Resource[1:] + ":"
		}
		label = format.PadRight(label, len(label), 8)
		if _, err := fmt.Fprintf(w, "%s %s remaining (resets in %s)\n", label, remaining, resetIn); err != nil {
			return err
		}
	}
	return nil
}

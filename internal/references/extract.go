package references

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spiffcs/refbot/internal/constants"
	"github.com/spiffcs/refbot/internal/model"
)

// codeFence delimits fenced code blocks in chat markdown.
const codeFence = "```"

// referencePattern matches "[owner/][repo]#N". The token must start a
// segment or follow a character that cannot be part of it; "/" is excluded
// from that set so URL fragments like "example.com/page#1234" do not match.
var referencePattern = regexp.MustCompile(
	`(?:^|[^A-Za-z0-9_.\-/#])` +
		`(?:([A-Za-z0-9_.-]+)/)?` + // owner
		`([A-Za-z0-9_.-]+)?` + // repo
		`#([1-9][0-9]*)\b`, // number
)

// span is a half-open byte range [start, end) of the source text.
type span struct {
	start, end int
}

// codeBlockSpans locates fenced code blocks. Fences pair up left to right;
// an unterminated opening fence excludes nothing.
func codeBlockSpans(text string) []span {
	var spans []span
	pos := 0
	for {
		open := strings.Index(text[pos:], codeFence)
		if open < 0 {
			return spans
		}
		open += pos

		close := strings.Index(text[open+len(codeFence):], codeFence)
		if close < 0 {
			return spans
		}
		end := open + len(codeFence) + close + len(codeFence)

		spans = append(spans, span{start: open, end: end})
		pos = end
	}
}

// outsideSpans returns the complement of spans within [0, n).
func outsideSpans(n int, excluded []span) []span {
	var segments []span
	pos := 0
	for _, s := range excluded {
		if s.start > pos {
			segments = append(segments, span{start: pos, end: s.start})
		}
		pos = s.end
	}
	if pos < n {
		segments = append(segments, span{start: pos, end: n})
	}
	return segments
}

// Extractor finds references in chat text.
type Extractor struct {
	HomeOwner     string
	HomeRepo      string
	MinBareNumber int
}

// NewExtractor creates an Extractor with the default home repository.
func NewExtractor() *Extractor {
	return &Extractor{
		HomeOwner:     constants.DefaultHomeOwner,
		HomeRepo:      constants.DefaultHomeRepo,
		MinBareNumber: constants.DefaultMinBareNumber,
	}
}

// Extract returns the references in text in order of appearance, including
// duplicates. References inside fenced code blocks and bare references
// below MinBareNumber are left out.
func (e *Extractor) Extract(text string) []model.Reference {
	var refs []model.Reference

	for _, seg := range outsideSpans(len(text), codeBlockSpans(text)) {
		part := text[seg.start:seg.end]
		for _, m := range referencePattern.FindAllStringSubmatchIndex(part, -1) {
			ref, ok := e.reference(part, m)
			if !ok {
				continue
			}
			ref.Start += seg.start
			ref.End += seg.start
			refs = append(refs, ref)
		}
	}

	return refs
}

// reference builds a Reference from submatch indices m of part.
func (e *Extractor) reference(part string, m []int) (model.Reference, bool) {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return part[m[2*i]:m[2*i+1]]
	}
	owner, repo, digits := group(1), group(2), group(3)

	if len(digits) > constants.MaxReferenceDigits {
		return model.Reference{}, false
	}
	number, err := strconv.Atoi(digits)
	if err != nil || number <= 0 {
		return model.Reference{}, false
	}

	qualified := owner != "" || repo != ""
	if !qualified && number < e.MinBareNumber {
		return model.Reference{}, false
	}

	// "owner/#N" names no repo.
	if repo == "" {
		repo = e.HomeRepo
	}
	if owner == "" {
		owner = e.HomeOwner
	}

	// The token starts after the anchor character, if any.
	start := m[6] - 1
	if m[4] >= 0 {
		start = m[4]
	}
	if m[2] >= 0 {
		start = m[2]
	}

	return model.Reference{
		Owner:     owner,
		Repo:      repo,
		Number:    number,
		Qualified: qualified,
		Start:     start,
		End:       m[1],
	}, true
}

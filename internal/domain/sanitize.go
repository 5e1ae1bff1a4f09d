package domain

import (
	"regexp"
	"strings"
)

// SanitizeMode selects how aggressively narrative lines are dropped once the
// first category header has been found.
type SanitizeMode int

const (
	// ModeMinimal keeps only headers, bullets, and blank lines.
	ModeMinimal SanitizeMode = iota
	// ModeDenylist keeps every started line except recognized meta-commentary.
	ModeDenylist
)

var (
	// boldHeaderRe matches a line that is nothing but a bold pair, e.g. "**Salinity Management**".
	boldHeaderRe = regexp.MustCompile(`^\*\*.*\*\*$`)
	hashHeaderRe = regexp.MustCompile(`^#+\s+`)
	bulletRe     = regexp.MustCompile(`^[•\-\*]\s+`)

	// anyHeaderRe locates a header-like fragment anywhere in the raw text,
	// the fallback when the model never produced a clean header line.
	anyHeaderRe = regexp.MustCompile(`\*\*[^*]+\*\*|#+\s+[^\n]+`)

	// Conversational openers that mark a line as model self-talk.
	openerRe = regexp.MustCompile(`^(okay|ok|well|so|now|first|let me|i need|i should|i'll|i will)\b`)

	// First-person intention followed within a few words by a planning verb,
	// e.g. "I'm going to provide", "I will try to cover".
	intentionRe = regexp.MustCompile(`\bi(?:'m|'ll| am| will| should| need)\b(?:\s+\w+){0,3}\s+(?:provide|create|generate|write|give|list|focus|cover|start|explain|outline)`)
)

// Phrase fragments that flag meta-commentary in denylist mode. Matched against
// the lowercased trimmed line.
var metaPhrases = []string{
	"let me",
	"i think",
	"i should",
	"the user",
	"in summary",
	"note that",
	"here are",
	"here's",
	"as requested",
	"based on the input",
	"my recommendations",
	// Narrative references to the request data.
	"they have",
	"the inputs",
	"the data",
	"the values",
	"the system",
	// Echoes of the formatting instructions.
	"should start",
	"should be",
	"should include",
	"should avoid",
}

// IsHeaderLine reports whether a trimmed line is a category header: either an
// entire bold pair or a markdown heading.
func IsHeaderLine(line string) bool {
	return boldHeaderRe.MatchString(line) || hashHeaderRe.MatchString(line)
}

// IsBulletLine reports whether a trimmed line is a bulleted action item.
func IsBulletLine(line string) bool {
	return bulletRe.MatchString(line)
}

// IsMetaCommentaryLine reports whether a trimmed line reads as model self-talk
// rather than recommendation content. Headers and bullets should be checked
// first; they are never meta-commentary.
func IsMetaCommentaryLine(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range metaPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return openerRe.MatchString(lower) || intentionRe.MatchString(lower)
}

// Sanitizer strips conversational filler from raw model output, leaving the
// category-header-and-bullet structure the prompt asks for.
type Sanitizer struct {
	mode SanitizeMode
}

// NewSanitizer creates a Sanitizer with the given mode.
func NewSanitizer(mode SanitizeMode) *Sanitizer {
	return &Sanitizer{mode: mode}
}

// Sanitize cleans one raw completion. It never fails: if the text contains no
// header structure at all, the trimmed input is returned unchanged.
func (s *Sanitizer) Sanitize(raw string) string {
	lines := strings.Split(raw, "\n")
	var kept []string
	startFound := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if IsHeaderLine(trimmed) {
			startFound = true
			kept = append(kept, line)
			continue
		}
		if !startFound {
			continue
		}

		switch {
		case trimmed == "":
			// Blank lines preserve spacing between categories.
			kept = append(kept, line)
		case IsBulletLine(trimmed):
			kept = append(kept, line)
		case s.mode == ModeDenylist && !IsMetaCommentaryLine(trimmed):
			kept = append(kept, line)
		}
	}

	if !startFound {
		if loc := anyHeaderRe.FindStringIndex(raw); loc != nil {
			return strings.TrimSpace(raw[loc[0]:])
		}
		return strings.TrimSpace(raw)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

package recovery

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameRepairThreshold = 50
	shortNameLimit      = 30
	maxNameTokens       = 4
)

// NameMatcher recovers a short exercise label from a string that may embed
// instructions. Matchers are total and side-effect-free.
type NameMatcher interface {
	Match(s string) (string, bool)
}

// NameMatcherFunc adapts a function to NameMatcher.
type NameMatcherFunc func(s string) (string, bool)

func (f NameMatcherFunc) Match(s string) (string, bool) { return f(s) }

// NameRepairer runs its matchers in order over names longer than the threshold.
type NameRepairer struct {
	threshold int
	matchers  []NameMatcher
}

// NewNameRepairer returns the default chain: leading phrase, leading tokens,
// then a hard cut.
func NewNameRepairer() NameRepairer {
	return NameRepairer{
		threshold: nameRepairThreshold,
		matchers: []NameMatcher{
			NameMatcherFunc(leadingPhrase),
			NameMatcherFunc(leadingTokens),
			NameMatcherFunc(truncated),
		},
	}
}

// Repair returns s unchanged when it is short enough. Every matcher result is
// at most threshold runes, so repairing twice changes nothing.
func (r NameRepairer) Repair(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= r.threshold {
		return s
	}
	for _, m := range r.matchers {
		if name, ok := m.Match(s); ok && utf8.RuneCountInString(name) <= r.threshold {
			return name
		}
	}
	return s
}

var phraseBoundary = regexp.MustCompile(
	`(?i)^([a-z][a-z\s-]+?)(?:\s*[:,-]\s|\s+(?:start|begin|place|hold|position|lie|stand|sit)\b)`)

// leadingPhrase takes the phrase before the first punctuation boundary or
// instructional verb, e.g. "Push-ups - start in a plank..." -> "Push-ups".
func leadingPhrase(s string) (string, bool) {
	m := phraseBoundary.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, utf8.RuneCountInString(name) >= 2
}

// leadingTokens keeps the longest run of up to four leading words that stays
// within the short-name limit and holds no instruction words.
func leadingTokens(s string) (string, bool) {
	words := strings.Fields(s)
	best := ""
	for i := 1; i <= len(words) && i <= maxNameTokens; i++ {
		if isInstructionWord(words[i-1]) {
			break
		}
		candidate := strings.TrimRight(strings.Join(words[:i], " "), ",.:;-")
		if utf8.RuneCountInString(candidate) > shortNameLimit {
			break
		}
		best = candidate
	}
	return best, best != ""
}

func truncated(s string) (string, bool) {
	r := []rune(s)
	if len(r) > shortNameLimit {
		r = r[:shortNameLimit]
	}
	name := strings.TrimSpace(string(r))
	return name, name != ""
}

func isInstructionWord(w string) bool {
	w = strings.ToLower(strings.Trim(w, ",.:;-"))
	return w == "position" || w == "then"
}

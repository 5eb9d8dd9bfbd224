package recovery

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// List markers recognised in free-text replies, tried in order.
var listMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*\d+[.)]\s+(.+)$`),
	regexp.MustCompile(`(?m)^\s*[•*-]\s+(.+)$`),
	regexp.MustCompile(`(?im)\bexercise(?:\s*\d+)?\s*:\s*(.+)$`),
}

var (
	labelPrefix     = regexp.MustCompile(`(?i)^(?:exercise|workout|movement)\s*\d*\s*:\s*`)
	separatorSuffix = regexp.MustCompile(`\s*(?::|,|\(|\s[-–—]\s).*$`)
	volumeSuffix    = regexp.MustCompile(`(?i)\s+\d+\s*(?:x|×|sets?|reps?|repetitions?|seconds?|secs?).*$`)
	instructionTail = regexp.MustCompile(`(?i)(?:^|\s+)(?:start|begin|place|hold|position|lie|stand|sit|then|while)\s+.*$`)
	rejectedWords   = []string{"position", "then", "while"}
)

// structuredText lifts exercise names out of a prose list and shapes them
// like the JSON the caller asked for.
func structuredText(raw string, shape Shape) (any, bool) {
	names := structuredNames(raw)
	if len(names) == 0 {
		return nil, false
	}
	items := make([]any, len(names))
	for i, n := range names {
		items[i] = map[string]any{"name": n}
	}
	switch shape {
	case ShapeExercise:
		return items[0], true
	case ShapeWorkout:
		return map[string]any{"exercises": items}, true
	}
	return items, true
}

// structuredNames returns the names found by the first marker pattern that
// yields any.
func structuredNames(raw string) []string {
	for _, re := range listMarkers {
		var names []string
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			if name, ok := cleanStructuredName(m[1]); ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return nil
}

func cleanStructuredName(s string) (string, bool) {
	s = strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
	s = labelPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	s = separatorSuffix.ReplaceAllString(s, "")
	s = volumeSuffix.ReplaceAllString(s, "")
	s = instructionTail.ReplaceAllString(s, "")
	s = strings.Trim(strings.TrimSpace(s), ".;-")
	s = strings.TrimSpace(s)

	n := utf8.RuneCountInString(s)
	if n <= 2 || n >= 50 {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, w := range rejectedWords {
		if strings.Contains(lower, w) {
			return "", false
		}
	}
	return s, true
}

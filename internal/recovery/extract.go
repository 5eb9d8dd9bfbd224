package recovery

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Shape is the document shape a caller expects from the model.
type Shape int

const (
	ShapeExercise Shape = iota
	ShapeExerciseList
	ShapeWorkout
)

func (s Shape) String() string {
	switch s {
	case ShapeExercise:
		return "exercise"
	case ShapeExerciseList:
		return "exercise_list"
	case ShapeWorkout:
		return "workout"
	}
	return "unknown"
}

func (s Shape) wantsArray() bool { return s == ShapeExerciseList }

// Strategy names the extraction step that produced a value.
type Strategy string

const (
	StrategyFenced         Strategy = "fenced_block"
	StrategyOuterSpan      Strategy = "outer_span"
	StrategyBraceScan      Strategy = "brace_scan"
	StrategyBracketRepair  Strategy = "bracket_repair"
	StrategyStructuredText Strategy = "structured_text"
)

// Strategies lists every strategy in the order the extractor tries them.
var Strategies = []Strategy{
	StrategyFenced, StrategyOuterSpan, StrategyBraceScan, StrategyBracketRepair, StrategyStructuredText,
}

// Parsed is a best-effort structure recovered from raw model text: a
// map[string]any or a []any with json.Number numbers.
type Parsed struct {
	Value    any
	Strategy Strategy
}

type extractFunc func(raw string, shape Shape) (any, bool)

// Extractor applies its strategies in a fixed order; the first that yields
// valid JSON wins.
type Extractor struct {
	steps []extractStep
}

type extractStep struct {
	strategy Strategy
	run      extractFunc
}

// NewExtractor returns an extractor with every strategy in its fixed order.
func NewExtractor() *Extractor {
	return &Extractor{steps: []extractStep{
		{StrategyFenced, fencedBlock},
		{StrategyOuterSpan, outerSpan},
		{StrategyBraceScan, braceScan},
		{StrategyBracketRepair, bracketRepair},
		{StrategyStructuredText, structuredText},
	}}
}

// Extract never panics. The returned error is always an *ExtractionFailure.
func (e *Extractor) Extract(raw string, shape Shape) (Parsed, error) {
	if strings.TrimSpace(raw) != "" {
		for _, step := range e.steps {
			if v, ok := step.run(raw, shape); ok {
				return Parsed{Value: v, Strategy: step.strategy}, nil
			}
		}
	}
	return Parsed{}, &ExtractionFailure{Reason: ReasonNoStructuredContent, RawTextSample: sampleOf(raw)}
}

var fencePattern = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*[ \t]*\r?\n?(.*?)```")

func fencedBlock(raw string, _ Shape) (any, bool) {
	for _, m := range fencePattern.FindAllStringSubmatch(raw, -1) {
		if v, ok := decodeJSON(m[1]); ok {
			return v, true
		}
	}
	return nil, false
}

// outerSpan takes the first opener through the last matching closer. For
// arrays only the opener that appears first is tried, so a truncated list is
// left for bracketRepair instead of collapsing to its first element.
func outerSpan(raw string, shape Shape) (any, bool) {
	pairs := [][2]byte{{'{', '}'}, {'[', ']'}}
	if shape.wantsArray() {
		first := strings.IndexAny(raw, "{[")
		if first < 0 {
			return nil, false
		}
		pairs = [][2]byte{{raw[first], closerOf(raw[first])}}
	}
	for _, p := range pairs {
		start := strings.IndexByte(raw, p[0])
		end := strings.LastIndexByte(raw, p[1])
		if start < 0 || end <= start {
			continue
		}
		if v, ok := decodeJSON(raw[start : end+1]); ok {
			return v, true
		}
	}
	return nil, false
}

// braceScan starts at the first line beginning with "{" and cuts where the
// nesting depth returns to zero. Braces inside string literals are ignored.
func braceScan(raw string, shape Shape) (any, bool) {
	start, offset := -1, 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "{") {
			start = offset + strings.IndexByte(line, '{')
			break
		}
		offset += len(line) + 1
	}
	if start < 0 {
		return nil, false
	}
	if open := strings.IndexByte(raw, '['); shape.wantsArray() && open >= 0 && open < start {
		// Inside an array; cutting out one element would lose the rest.
		return nil, false
	}
	var sc scanner
	for i := start; i < len(raw); i++ {
		if sc.step(raw[i]) && len(sc.stack) == 0 {
			return decodeJSON(raw[start : i+1])
		}
	}
	return nil, false
}

// bracketRepair completes an array that was cut off mid-stream. It first closes
// every open bracket in order; if that does not parse it cuts back to the last
// complete element and closes the array there.
func bracketRepair(raw string, shape Shape) (any, bool) {
	if !shape.wantsArray() {
		return nil, false
	}
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return nil, false
	}
	body := strings.ReplaceAll(raw[start:], "```", "")
	body = strings.TrimRight(body, " \t\r\n,")

	var sc scanner
	lastElementEnd := -1
	for i := 0; i < len(body); i++ {
		if sc.step(body[i]) && len(sc.stack) == 1 && sc.stack[0] == '[' {
			lastElementEnd = i + 1
		}
		if len(sc.stack) == 0 {
			// The array closed properly; the structural strategies already had their chance.
			return nil, false
		}
	}

	var completed strings.Builder
	completed.WriteString(body)
	if sc.inString {
		completed.WriteByte('"')
	}
	for i := len(sc.stack) - 1; i >= 0; i-- {
		completed.WriteByte(closerOf(sc.stack[i]))
	}
	if v, ok := decodeJSON(completed.String()); ok {
		return v, true
	}
	if lastElementEnd > 0 {
		return decodeJSON(body[:lastElementEnd] + "]")
	}
	return nil, false
}

// scanner tracks bracket nesting outside string literals.
type scanner struct {
	stack    []byte
	inString bool
	escaped  bool
}

// step consumes c and reports whether it closed a bracket.
func (s *scanner) step(c byte) bool {
	if s.inString {
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == '"':
			s.inString = false
		}
		return false
	}
	switch c {
	case '"':
		s.inString = true
	case '{', '[':
		s.stack = append(s.stack, c)
	case '}', ']':
		if n := len(s.stack); n > 0 && closerOf(s.stack[n-1]) == c {
			s.stack = s.stack[:n-1]
			return true
		}
	}
	return false
}

func closerOf(open byte) byte {
	if open == '[' {
		return ']'
	}
	return '}'
}

// decodeJSON accepts s only when it is exactly one JSON object or array.
func decodeJSON(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return v, true
}

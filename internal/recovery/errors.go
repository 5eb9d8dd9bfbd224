package recovery

import (
	"errors"
	"fmt"
	"strings"
)

// ReasonNoStructuredContent is reported when no strategy located usable structure.
const ReasonNoStructuredContent = "no_structured_content"

const rawSampleLimit = 200

// ErrEmptyOutput is wrapped in an UpstreamFailure when the model returned no text.
var ErrEmptyOutput = errors.New("model returned empty output")

// ExtractionFailure means no structured content could be located in the raw text.
type ExtractionFailure struct {
	Reason        string
	RawTextSample string
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// ValidationFailure means the output was parseable but still schema-non-conformant
// after repair.
type ValidationFailure struct {
	Errors []string
}

func (e *ValidationFailure) Error() string {
	return "invalid AI output: " + strings.Join(e.Errors, "; ")
}

// UpstreamFailure wraps an error from the generation call itself.
type UpstreamFailure struct {
	Err error
}

func (e *UpstreamFailure) Error() string {
	return "upstream generation failed: " + e.Err.Error()
}

func (e *UpstreamFailure) Unwrap() error { return e.Err }

func sampleOf(raw string) string {
	r := []rune(raw)
	if len(r) <= rawSampleLimit {
		return raw
	}
	return string(r[:rawSampleLimit])
}

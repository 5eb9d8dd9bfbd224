package recovery_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"alcyxob/fitness-ai/internal/recovery"

	"github.com/stretchr/testify/require"
)

// fields decodes a JSON object the way the extractor does.
func fields(t *testing.T, raw string) recovery.Fields {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var f recovery.Fields
	require.NoError(t, dec.Decode(&f))
	return f
}

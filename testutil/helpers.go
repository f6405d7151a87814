package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// JSONMarshal encodes v, failing the test on error
func JSONMarshal(t testing.TB, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "marshal %T", v)
	return data
}

// JSONUnmarshal decodes data into a new T, failing the test on error
func JSONUnmarshal[T any](t testing.TB, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), "unmarshal into %T", v)
	return v
}

// JSONFields decodes a JSON object so tests can assert on its keys
func JSONFields(t testing.TB, data []byte) map[string]any {
	t.Helper()
	return JSONUnmarshal[map[string]any](t, data)
}

package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetOption_MultiTokenValue(t *testing.T) {
	so, err := ParseSetOption("name Foo value 1 2 3")
	require.NoError(t, err)
	assert.Equal(t, "Foo", so.Name)
	assert.Equal(t, "1 2 3", so.Value)
	assert.Empty(t, so.Context)
}

func TestParseSetOption_WithContext(t *testing.T) {
	so, err := ParseSetOption("name Foo value Bar context Baz")
	require.NoError(t, err)
	assert.Equal(t, "Foo", so.Name)
	assert.Equal(t, "Bar", so.Value)
	assert.Equal(t, "Baz", so.Context)
}

func TestParseSetOption_LastContextOccurrenceWins(t *testing.T) {
	so, err := ParseSetOption("name Foo value has context inside context real")
	require.NoError(t, err)
	assert.Equal(t, "has context inside", so.Value)
	assert.Equal(t, "real", so.Context)
}

func TestParseSetOption_EmbeddedContextDoesNotMatch(t *testing.T) {
	// "context" inside a larger word is not whitespace-bounded.
	so, err := ParseSetOption("name Foo value subcontext7")
	require.NoError(t, err)
	assert.Equal(t, "subcontext7", so.Value)
	assert.Empty(t, so.Context)
}

func TestParseSetOption_MultiWordName(t *testing.T) {
	so, err := ParseSetOption("name Skill Level value 10")
	require.NoError(t, err)
	assert.Equal(t, "Skill Level", so.Name)
	assert.Equal(t, "10", so.Value)
}

func TestParseSetOption_Errors(t *testing.T) {
	cases := []struct {
		args string
		msg  string
	}{
		{"", "expected name"},
		{"value 3", "expected name"},
		{"nameFoo value 3", "expected name"},
		{"name", "expected name"},
		{"name Foo", "missing value"},
		{"name value 3", "empty option name"},
		{"name Foo value", "empty option value"},
		{"name Foo value   ", "empty option value"},
		{"name Foo value Bar context", "empty context"},
	}
	for _, tc := range cases {
		_, err := ParseSetOption(tc.args)
		require.Error(t, err, tc.args)
		assert.Contains(t, err.Error(), tc.msg, tc.args)
		assert.Equal(t, GrammarError, err.(*Error).Kind, tc.args)
	}
}

func TestBoundedIndex(t *testing.T) {
	assert.Equal(t, 0, boundedIndex("value x", "value"))
	assert.Equal(t, 2, boundedIndex("x value", "value"))
	assert.Equal(t, -1, boundedIndex("xvalue", "value"))
	assert.Equal(t, -1, boundedIndex("valuex", "value"))
	assert.Equal(t, 6, boundedIndex("avalue value", "value"))
}

func TestBoundedLastIndex(t *testing.T) {
	assert.Equal(t, 8, boundedLastIndex("context context", "context"))
	assert.Equal(t, 0, boundedLastIndex("context subcontext", "context"))
	assert.Equal(t, -1, boundedLastIndex("subcontext", "context"))
}

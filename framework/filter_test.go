package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, filters.MustMatch.Set("^pkg/TestA"))
	require.NoError(t, filters.MustMatch.Set("TestB$"))
	require.NoError(t, filters.MustNotMatch.Set("slow"))

	assert.True(t, filters.AsFilter(TestID{Path: []string{"pkg", "TestAlpha"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"other", "TestB"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"pkg", "TestAlpha", "slow"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"pkg", "TestC"}}))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("(unclosed"))
	assert.False(t, list.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("a"))
	require.NoError(t, filters.MustMatch.Set("b"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), `skip any not matching "a" or "b"`)
	assert.NotContains(t, buf.String(), "skip any matching")
}

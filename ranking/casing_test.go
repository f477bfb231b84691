package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTagName(t *testing.T) {
	assert.Equal(t, "SaaS", CanonicalTagName("saas"))
	assert.Equal(t, "SaaS", CanonicalTagName("SAAS"))
	assert.Equal(t, "AI Tools", CanonicalTagName("ai tools"))
	assert.Equal(t, "Chrome Extension", CanonicalTagName("Chrome extension"))
}

func TestCanonicalTagName_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "homebrew-tag", CanonicalTagName("homebrew-tag"))
	assert.Equal(t, "WeIrD", CanonicalTagName("WeIrD"))
}

func TestKnownTagNames_SortedAndComplete(t *testing.T) {
	names := KnownTagNames()

	assert.Len(t, names, len(canonicalCasing))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "SaaS")
	assert.Contains(t, names, "No Code")
}

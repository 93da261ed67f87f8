package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tilereveal/tilereveal/internal/bank"
)

func TestContentKeywordsDropsNoise(t *testing.T) {
	kw := contentKeywords("What is the largest planet, and where does it orbit?")

	assert.Contains(t, kw, "largest")
	assert.Contains(t, kw, "planet")
	assert.Contains(t, kw, "orbit")
	assert.NotContains(t, kw, "what", "stop word kept")
	assert.NotContains(t, kw, "the", "stop word kept")
	assert.NotContains(t, kw, "is", "stop word kept")
}

func TestContentKeywordsStripsPunctuationAndShortTokens(t *testing.T) {
	kw := contentKeywords("A snail climbs 3 meters: 3, 2, 1!")

	assert.Contains(t, kw, "snail")
	assert.Contains(t, kw, "climbs")
	assert.Contains(t, kw, "meters")
	assert.NotContains(t, kw, "3", "single-character token kept")
	assert.NotContains(t, kw, "1", "single-character token kept")
}

func TestTooSimilarThreshold(t *testing.T) {
	base := bank.Question{Text: "the red fox jumps over the lazy brown dog tonight"}

	// Shares exactly four content keywords with base: over the line.
	overlapping := bank.Question{Text: "red fox jumps near brown fences"}
	assert.True(t, TooSimilar(overlapping, []bank.Question{base}, 3))

	// Shares exactly three: at the threshold, still allowed.
	borderline := bank.Question{Text: "red fox jumps elsewhere entirely today"}
	assert.False(t, TooSimilar(borderline, []bank.Question{base}, 3))

	assert.False(t, TooSimilar(overlapping, nil, 3), "empty selection never rejects")
}

func TestTooSimilarChecksEverySelectedQuestion(t *testing.T) {
	selected := []bank.Question{
		{Text: "completely unrelated astronomy trivia about distant nebulae"},
		{Text: "the red fox jumps over the lazy brown dog tonight"},
	}
	candidate := bank.Question{Text: "red fox jumps near brown fences"}

	assert.True(t, TooSimilar(candidate, selected, 3))
}

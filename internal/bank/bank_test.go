package bank

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProducesTargetSize(t *testing.T) {
	questions := Build()
	assert.Len(t, questions, TargetSize)
}

func TestBuildIsDeterministic(t *testing.T) {
	assert.Equal(t, Build(), Build(), "two builds must be identical")
}

func TestBuildOptionInvariants(t *testing.T) {
	for _, q := range Build() {
		require.Len(t, q.Options, OptionCount, "question %s", q.ID)
		require.GreaterOrEqual(t, q.CorrectIndex, 0, "question %s", q.ID)
		require.Less(t, q.CorrectIndex, OptionCount, "question %s", q.ID)
		require.NotEmpty(t, q.Options[q.CorrectIndex], "question %s", q.ID)

		// Options are distinct except for the documented None padding.
		seen := map[string]int{}
		for _, opt := range q.Options {
			seen[opt]++
		}
		for opt, count := range seen {
			if opt == NoneOption {
				continue
			}
			require.Equal(t, 1, count, "question %s repeats option %q", q.ID, opt)
		}
	}
}

func TestBuildDifficultySpreadIsEven(t *testing.T) {
	counts := map[int]int{}
	for _, q := range Build() {
		require.GreaterOrEqual(t, q.Difficulty, 1)
		require.LessOrEqual(t, q.Difficulty, 5)
		counts[q.Difficulty]++
	}
	for diff := 1; diff <= 5; diff++ {
		assert.Equal(t, TargetSize/5, counts[diff], "difficulty %d", diff)
	}
}

func TestBuildFillerQuestionsAreReusable(t *testing.T) {
	questions := Build()

	firstPass := 0
	for _, set := range stemSets {
		firstPass += len(set.Stems)
	}

	for i, q := range questions {
		assert.Equal(t, i >= firstPass, q.Reusable, "question %s", q.ID)
	}
}

func TestBuildCoversAllCategoriesAndRoles(t *testing.T) {
	categories := map[Category]int{}
	roles := map[Role]int{}
	for _, q := range Build() {
		categories[q.Category]++
		roles[q.Role]++
	}

	for _, cat := range categoryOrder {
		assert.Greater(t, categories[cat], 0, "category %s", cat)
		assert.Greater(t, roles[defaultRoles[cat]], 0, "role for category %s", cat)
	}
}

func TestBuildTerminates(t *testing.T) {
	done := make(chan []Question, 1)
	go func() {
		done <- Build()
	}()

	select {
	case questions := <-done:
		assert.Len(t, questions, TargetSize)
	case <-time.After(3 * time.Second):
		t.Fatal("Build did not finish within 3s")
	}
}

// A pool size sharing a factor with the distractor stride collapses the
// sampler cycle below three distinct slots. The stride is prime, so only
// multiples of it are dangerous; the embedded content must never hit one,
// with or without the correct answer removed from the pool.
func TestDistractorPoolSizesClearTheStrideCycle(t *testing.T) {
	for cat, set := range stemSets {
		require.GreaterOrEqual(t, len(set.Distractors), OptionCount-1, "category %s", cat)
		assert.NotZero(t, len(set.Distractors)%distractorStride,
			"category %s: raw pool size %d is a stride multiple", cat, len(set.Distractors))
		assert.NotZero(t, (len(set.Distractors)-1)%distractorStride,
			"category %s: reduced pool size %d is a stride multiple", cat, len(set.Distractors)-1)
	}
}

// Answers absent from the distractor pool leave the pool at full size;
// those were the ids that used to spin the sampler.
func TestBuildOptionsHandlesAnswersOutsidePool(t *testing.T) {
	set := stemSets[CategoryLogic]
	options, correctIdx := buildOptions(1, "9", set.Distractors)

	require.Len(t, options, OptionCount)
	assert.Equal(t, "9", options[correctIdx])
	for i, opt := range options {
		assert.NotEmpty(t, opt, "slot %d", i)
	}
}

// Even a degenerate pool whose size equals the stride must come back
// padded rather than hang the builder.
func TestBuildOptionsBoundsDegeneratePools(t *testing.T) {
	pool := make([]string, distractorStride)
	for i := range pool {
		pool[i] = fmt.Sprintf("d%02d", i)
	}

	options, correctIdx := buildOptions(1, "answer", pool)
	require.Len(t, options, OptionCount)
	assert.Equal(t, "answer", options[correctIdx])
	assert.Contains(t, options, NoneOption,
		"a single-slot cycle pads the remaining options")
}

func TestStrideIndexArithmetic(t *testing.T) {
	assert.Equal(t, 0, strideIndex(0, 0, 17, 10))
	assert.Equal(t, 7, strideIndex(0, 1, 17, 10))
	assert.Equal(t, 4, strideIndex(0, 2, 17, 10))
	assert.Equal(t, 2, strideIndex(5, 1, 13, 4))

	// Negative intermediate values fold through absolute value.
	assert.Equal(t, 3, strideIndex(-20, 1, 17, 10))
}

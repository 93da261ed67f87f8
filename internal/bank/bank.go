package bank

import "fmt"

// Category buckets questions by the kind of thinking they demand.
type Category string

const (
	CategoryLogic    Category = "logic"
	CategoryRiddle   Category = "riddle"
	CategoryPattern  Category = "pattern"
	CategoryWordplay Category = "wordplay"
	CategoryTrick    Category = "trick"
)

// Role is the cognitive slot a question fills within one puzzle; the
// selector spreads roles so a session never feels one-note.
type Role string

const (
	RoleIdentify Role = "IDENTIFY"
	RoleDetail   Role = "DETAIL"
	RoleLogic    Role = "LOGIC"
	RoleContext  Role = "CONTEXT"
	RoleTrick    Role = "TRICK"
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleIdentify, RoleDetail, RoleLogic, RoleContext, RoleTrick}

const (
	// TargetSize is the corpus size Build always produces.
	TargetSize = 500
	// OptionCount is the fixed number of option slots per question.
	OptionCount = 4
	// NoneOption pads options when a stem has too few distractors, and
	// stands in as the correct answer when a stem has none recorded.
	NoneOption = "None"
)

// Question is one multiple-choice entry of the corpus. CorrectIndex is
// always a valid index into Options, and Options always has OptionCount
// entries.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Category     Category `json:"category"`
	Difficulty   int      `json:"difficulty"`
	Reusable     bool     `json:"reusable"`
	Role         Role     `json:"role"`
}

var categoryOrder = []Category{
	CategoryLogic,
	CategoryRiddle,
	CategoryPattern,
	CategoryWordplay,
	CategoryTrick,
}

var defaultRoles = map[Category]Role{
	CategoryLogic:    RoleIdentify,
	CategoryRiddle:   RoleContext,
	CategoryPattern:  RoleIdentify,
	CategoryWordplay: RoleLogic,
	CategoryTrick:    RoleTrick,
}

// Build assembles the full corpus. It is a pure function of the embedded
// stem tables: every call returns the same TargetSize questions in the
// same order, so the result is built once at startup and shared read-only.
func Build() []Question {
	questions := make([]Question, 0, TargetSize)
	id := 0

	for _, cat := range categoryOrder {
		set := stemSets[cat]
		for i, stem := range set.Stems {
			questions = append(questions, newQuestion(id, stem, answerAt(set, i), cat, false))
			id++
		}
	}

	// Cycle categories and stems until the corpus reaches TargetSize.
	// Filler copies reuse stems verbatim but get fresh option layouts from
	// the new id, and are flagged reusable since they exist only as padding.
	fill := make(map[Category]int, len(categoryOrder))
	for len(questions) < TargetSize {
		cat := categoryOrder[len(questions)%len(categoryOrder)]
		set := stemSets[cat]
		pos := fill[cat] % len(set.Stems)
		fill[cat]++
		questions = append(questions, newQuestion(id, set.Stems[pos], answerAt(set, pos), cat, true))
		id++
	}

	return questions
}

func answerAt(set stemSet, i int) string {
	if i < len(set.Answers) {
		return set.Answers[i]
	}
	return NoneOption
}

func newQuestion(id int, text, correct string, cat Category, reusable bool) Question {
	options, correctIdx := buildOptions(id, correct, stemSets[cat].Distractors)
	return Question{
		ID:           fmt.Sprintf("q%03d", id),
		Text:         text,
		Options:      options,
		CorrectIndex: correctIdx,
		Category:     cat,
		Difficulty:   id%5 + 1,
		Reusable:     reusable,
		Role:         defaultRoles[cat],
	}
}

const (
	distractorStride = 17
	slotStride       = 13
)

// strideIndex is the deterministic sampler behind option layout:
// |id + step*stride| mod size. Not random, just id-keyed arithmetic, so a
// given id always yields the same picks. The exact integer behavior
// (negative values folded through absolute value) is load-bearing for
// reproducibility and must not be changed.
func strideIndex(id, step, stride, size int) int {
	v := id + step*stride
	if v < 0 {
		v = -v
	}
	return v % size
}

// buildOptions assembles the four option slots for a question: the correct
// answer plus three distractors sampled and placed by strideIndex.
func buildOptions(id int, correct string, distractors []string) ([]string, int) {
	pool := make([]string, 0, len(distractors))
	for _, d := range distractors {
		if d != correct {
			pool = append(pool, d)
		}
	}

	wrong := make([]string, 0, OptionCount-1)
	if len(pool) >= OptionCount-1 {
		// The sampler sequence repeats after len(pool) steps; when the pool
		// size shares a factor with the stride the cycle holds fewer than
		// three distinct slots, so the walk is bounded and padded instead of
		// retried.
		seen := make(map[int]bool, OptionCount-1)
		for step := 0; len(wrong) < OptionCount-1 && step < len(pool); step++ {
			idx := strideIndex(id, step, distractorStride, len(pool))
			if seen[idx] {
				continue
			}
			seen[idx] = true
			wrong = append(wrong, pool[idx])
		}
	}
	for len(wrong) < OptionCount-1 {
		wrong = append(wrong, NoneOption)
	}

	raw := append([]string{correct}, wrong...)
	options := make([]string, OptionCount)
	for slot, val := range raw {
		pos := strideIndex(id, slot, slotStride, OptionCount)
		for options[pos] != "" {
			pos = (pos + 1) % OptionCount
		}
		options[pos] = val
	}

	correctIdx := 0
	for i, opt := range options {
		if opt == correct {
			correctIdx = i
			break
		}
	}
	return options, correctIdx
}

package puzzle

import (
	"strings"
	"unicode"

	"github.com/tilereveal/tilereveal/internal/bank"
)

// DefaultSimilarityThreshold is the shared-keyword count above which two
// questions are considered near-duplicates.
const DefaultSimilarityThreshold = 3

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"if": true, "of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "do": true, "does": true, "did": true, "has": true,
	"have": true, "had": true, "you": true, "your": true, "it": true,
	"its": true, "this": true, "that": true, "these": true, "those": true,
	"what": true, "which": true, "who": true, "when": true, "where": true,
	"why": true, "how": true, "not": true, "no": true, "can": true,
	"will": true,
}

// contentKeywords reduces question text to its content-bearing tokens:
// lowercased, punctuation stripped, single-character tokens and stop words
// dropped.
func contentKeywords(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	keywords := make(map[string]struct{})
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) < 2 || stopWords[tok] {
			continue
		}
		keywords[tok] = struct{}{}
	}
	return keywords
}

// TooSimilar reports whether candidate shares more than threshold content
// keywords with any already-selected question. O(selected x keywords) per
// call, which is cheap at bank size ~500 and grids of at most 25 tiles.
func TooSimilar(candidate bank.Question, selected []bank.Question, threshold int) bool {
	ck := contentKeywords(candidate.Text)
	for _, prev := range selected {
		shared := 0
		for kw := range contentKeywords(prev.Text) {
			if _, ok := ck[kw]; ok {
				shared++
			}
		}
		if shared > threshold {
			return true
		}
	}
	return false
}

package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Acceptance thresholds per tier. The asymmetry is deliberate: vault answers
// bypass the curated lesson material, so they require a near-exact
// restatement of a previously answered question. Do not lower either
// without re-tuning against the scorer below.
const (
	LocalThreshold = 0.70
	VaultThreshold = 0.92
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics, and replaces every
// non-alphanumeric rune with a space, collapsing runs of whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSet drops tokens of length <= minLen and dedupes the rest.
func tokenSet(folded string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(folded) {
		if len(tok) <= minLen {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Similarity scores two strings in [0,1]: normalized, synonym-folded,
// token-set overlap divided by the LARGER set (not the union), plus a
// domain-keyword bonus. The thresholds above were tuned against this exact
// denominator; do not swap in standard Jaccard.
func (lx *Lexicon) Similarity(a, b string) float64 {
	fa := lx.Fold(Normalize(a))
	fb := lx.Fold(Normalize(b))

	setA := tokenSet(fa, 2)
	setB := tokenSet(fb, 2)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	common := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common++
		}
	}

	max := len(setA)
	if len(setB) > max {
		max = len(setB)
	}
	score := float64(common) / float64(max)

	// Shared domain keywords push near-threshold phrasings over the line.
	shared := 0
	for _, k := range lx.normKeywords {
		if _, inA := setA[k]; !inA {
			continue
		}
		if _, inB := setB[k]; inB {
			shared++
		}
	}
	if shared >= 2 {
		score += 0.25
	}
	if shared >= 3 {
		score += 0.15
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Overlap is the looser scorer for prose knowledge fragments: the fraction
// of query tokens (length > 3) that appear as a substring anywhere in the
// content. Substring, not token-set, because fragments are running text.
func (lx *Lexicon) Overlap(query, content string) float64 {
	fq := lx.Fold(Normalize(query))
	fc := lx.Fold(Normalize(content))

	var total, hits int
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(fq) {
		if len(tok) <= 3 {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		total++
		if strings.Contains(fc, tok) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

package match

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Hola Mundo", "hola mundo"},
		{"diacritics", "¿Quién es él?", "quien es el"},
		{"punctuation", "el-principito, ¡claro!", "el principito claro"},
		{"collapse_spaces", "  a   b  ", "a b"},
		{"empty", "", ""},
		{"only_punctuation", "¿¡...!?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFold_WordBoundaries(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single_word_variant", "el child pregunta", "el nino pregunta"},
		{"phrase_variant", "el little one pregunta", "el nino pregunta"},
		{"phrase_before_word", "quien es el nino protagonista", "quien es el principito"},
		{"adjacent_occurrences", "kid kid kid", "nino nino nino"},
		{"no_partial_words", "childish things", "childish things"},
		{"untouched", "quien es el rey", "quien es el rey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lx.Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Reflexive(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	for _, s := range []string{
		"¿Quién es el principito?",
		"the little one asks",
		"donde vive la rosa",
	} {
		if got := lx.Similarity(s, s); !almostEqual(got, 1.0) {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	a := "¿Quién es el principito?"
	b := "¿Quién es el niño protagonista?"
	if ab, ba := lx.Similarity(a, b), lx.Similarity(b, a); !almostEqual(ab, ba) {
		t.Errorf("Similarity is not symmetric: %v vs %v", ab, ba)
	}
}

func TestSimilarity_Empty(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	tests := []struct {
		a, b string
	}{
		{"", "algo"},
		{"algo", ""},
		{"", ""},
		{"a el de", "algo"}, // all tokens <= 2 chars are dropped
	}
	for _, tt := range tests {
		if got := lx.Similarity(tt.a, tt.b); got != 0 {
			t.Errorf("Similarity(%q, %q) = %v, want 0", tt.a, tt.b, got)
		}
	}
}

func TestSimilarity_SynonymFolding(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	if got := lx.Similarity("the little one asks", "the child asks"); got < LocalThreshold {
		t.Errorf("expected synonym-folded similarity >= %v, got %v", LocalThreshold, got)
	}
}

func TestSimilarity_FlashcardPhrasing(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	got := lx.Similarity("¿Quién es el principito?", "¿Quién es el niño protagonista?")
	if got < LocalThreshold {
		t.Errorf("expected score >= %v for folded phrasings, got %v", LocalThreshold, got)
	}
}

func TestSimilarity_KeywordBonus(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	// Two shared domain keywords (principito, rosa): 2/5 base + 0.25 bonus.
	got := lx.Similarity(
		"el principito y la rosa",
		"la rosa del principito viven y hablan",
	)
	if !almostEqual(got, 0.4+0.25) {
		t.Errorf("expected 0.65, got %v", got)
	}

	// Three shared keywords adds a further 0.15.
	got = lx.Similarity(
		"principito rosa zorro",
		"principito rosa zorro juntos cuentan historias largas",
	)
	want := 3.0/7.0 + 0.25 + 0.15
	if !almostEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSimilarity_Clamped(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	// Identical strings with 3+ keywords would exceed 1.0 without clamping.
	s := "principito rosa zorro planeta"
	if got := lx.Similarity(s, s); !almostEqual(got, 1.0) {
		t.Errorf("expected clamp to 1.0, got %v", got)
	}
}

func TestOverlap(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	tests := []struct {
		name    string
		query   string
		content string
		want    float64
	}{
		{
			name:    "partial",
			query:   "donde vive el principito realmente",
			content: "El principito vive en el asteroide B-612, donde cuida su rosa.",
			want:    0.75, // donde, vive, principito hit; realmente misses
		},
		{
			name:    "all_short_tokens",
			query:   "el la de un",
			content: "cualquier texto",
			want:    0,
		},
		{
			name:    "empty_query",
			query:   "",
			content: "texto",
			want:    0,
		},
		{
			name:    "full",
			query:   "principito rosa",
			content: "el principito cuida su rosa",
			want:    1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lx.Overlap(tt.query, tt.content); !almostEqual(got, tt.want) {
				t.Errorf("Overlap(%q, %q) = %v, want %v", tt.query, tt.content, got, tt.want)
			}
		})
	}
}

func TestIsNegative(t *testing.T) {
	t.Parallel()
	lx := DefaultLexicon()

	tests := []struct {
		text string
		want bool
	}{
		{"Lo siento, no tengo información sobre eso.", true},
		{"NO TENGO INFORMACIÓN al respecto", true},
		{"I don't have enough context to answer.", true},
		{"El principito vive en el asteroide B-612.", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := lx.IsNegative(tt.text); got != tt.want {
			t.Errorf("IsNegative(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

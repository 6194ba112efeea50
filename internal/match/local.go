package match

import (
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
)

// Provenance notes appended to locally sourced answers.
const (
	flashcardNote = "\n\n_Source: lesson flashcards_"
	quizNote      = "\n\n_Source: lesson quiz_"
)

// Matcher scans a lesson's curated study material for an answer. Read-only;
// a miss is a normal outcome, never an error.
type Matcher struct {
	lex *Lexicon
}

func NewMatcher(lex *Lexicon) *Matcher {
	return &Matcher{lex: lex}
}

// Match checks flashcards, then quiz questions, then knowledge chunks.
// The first category hit short-circuits; there is no ranking across
// categories. Returns nil when nothing qualifies.
func (m *Matcher) Match(query string, lesson *core.LessonContext) *core.ResolutionResult {
	if lesson == nil {
		return nil
	}

	for _, card := range lesson.Flashcards {
		if m.lex.Similarity(query, card.Question) >= LocalThreshold {
			return &core.ResolutionResult{
				Text:   card.Answer + flashcardNote,
				Type:   core.ResultLocalMatch,
				Source: core.SourceFlashcard,
			}
		}
	}

	for _, q := range lesson.Quiz {
		if m.lex.Similarity(query, q.Question) < LocalThreshold {
			continue
		}
		option := q.CorrectOption()
		if option == "" {
			continue
		}
		text := option
		if q.Explanation != "" {
			text = fmt.Sprintf("%s\n\n%s", option, q.Explanation)
		}
		return &core.ResolutionResult{
			Text:   text + quizNote,
			Type:   core.ResultLocalMatch,
			Source: core.SourceQuiz,
		}
	}

	// Chunks are prose: keep the single best overlap instead of first hit.
	var best *core.KnowledgeChunk
	bestScore := 0.0
	for i := range lesson.KnowledgeChunks {
		chunk := &lesson.KnowledgeChunks[i]
		if score := m.lex.Overlap(query, chunk.Content); score > bestScore {
			bestScore = score
			best = chunk
		}
	}
	if best != nil && bestScore > LocalThreshold {
		return &core.ResolutionResult{
			Text:   best.Content,
			Type:   core.ResultLocalMatch,
			Source: core.SourceKnowledgeChunk,
		}
	}

	return nil
}

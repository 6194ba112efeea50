package core

// LessonContext is the per-request view of a lesson as exported by the CMS.
// It is created by the lesson editor and read-only to the engine.
type LessonContext struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Summary          string           `json:"summary"`
	VideoDescription string           `json:"videoDescription"`
	AIConfig         AIConfig         `json:"aiConfig"`
	Flashcards       []Flashcard      `json:"flashcards"`
	Quiz             []QuizQuestion   `json:"quiz"`
	KnowledgeChunks  []KnowledgeChunk `json:"knowledgeChunks"`
}

type AIConfig struct {
	SystemPrompt  string `json:"systemPrompt"`
	KnowledgeBase string `json:"knowledgeBase"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// KnowledgeChunk is a free-text study fragment attached to a lesson.
type KnowledgeChunk struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// CorrectOption returns the text of the correct answer, or "" when the
// index is out of range (malformed editor data must not panic the engine).
func (q QuizQuestion) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

package core

const (
	TutorName      = "AcademyTutor"
	TutorUserAgent = "AcademyTutor/0.1"
	TutorVersion   = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a learner conversation. History is owned by the
// calling transport; the engine only reads it and appends derived results.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Result types, in tier order.
const (
	ResultLocalMatch = "local_match"
	ResultVaultMatch = "vault_match"
	ResultGenerated  = "gemini_response"
	ResultError      = "error"
)

// Sources for local matches.
const (
	SourceFlashcard      = "flashcard"
	SourceQuiz           = "quiz"
	SourceKnowledgeChunk = "knowledge_chunk"
)

// ResolutionResult is the transient outcome of one resolve call. Only Text
// survives past the call, and only when promoted into the vault.
type ResolutionResult struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
}

// Model describes a generation model discovered from the provider.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

package gateway

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/gestasai/academy-tutor/internal/core"
)

// promptTokenBudget caps the lesson material folded into the system prompt.
// Persona and rules always fit; chunks are dropped once the budget runs out.
const promptTokenBudget = 6000

const defaultPersona = "Eres un tutor paciente que acompaña al estudiante a través del material de esta lección."

var behaviorRules = []string{
	"Responde únicamente sobre el contenido de esta lección.",
	"Si la pregunta no tiene relación con la lección, recházala con amabilidad y redirige al estudiante al tema.",
	"Trata el contexto proporcionado como la única fuente de verdad.",
	"Si el contexto no alcanza para responder, dilo claramente; nunca inventes datos.",
	"Mantén un tono instructivo y cercano, como un profesor en clase.",
}

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

func getTokenizer() *tiktoken.Tiktoken {
	tokenizerOnce.Do(func() {
		tokenizer, _ = tiktoken.GetEncoding("cl100k_base")
	})
	return tokenizer
}

func countTokens(text string) int {
	if enc := getTokenizer(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	// Rough fallback when the encoding cannot be loaded.
	return len([]rune(text)) / 4
}

// BuildSystemPrompt assembles the instruction block sent with every
// generation call: persona, behavioral rules, then as much lesson material
// as the token budget allows.
func BuildSystemPrompt(lesson *core.LessonContext) string {
	var sb strings.Builder

	persona := defaultPersona
	if lesson != nil && lesson.AIConfig.SystemPrompt != "" {
		persona = lesson.AIConfig.SystemPrompt
	}
	sb.WriteString(persona)

	sb.WriteString("\n\nReglas:\n")
	for _, rule := range behaviorRules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}

	if lesson == nil {
		return sb.String()
	}

	budget := promptTokenBudget - countTokens(sb.String())
	appendSection := func(header, body string) {
		body = strings.TrimSpace(body)
		if body == "" || budget <= 0 {
			return
		}
		section := "\n" + header + "\n" + body + "\n"
		cost := countTokens(section)
		if cost > budget {
			return
		}
		sb.WriteString(section)
		budget -= cost
	}

	appendSection("Lección: "+lesson.Title, lesson.Summary)
	appendSection("Material de la lección:", lesson.AIConfig.KnowledgeBase)
	for _, chunk := range lesson.KnowledgeChunks {
		appendSection(chunk.Title+":", chunk.Content)
	}
	appendSection("Descripción del video:", lesson.VideoDescription)

	return sb.String()
}

package lesson

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gestasai/academy-tutor/internal/core"
)

const sampleExport = `{
	"id": "lesson-principito",
	"title": "El Principito",
	"summary": "<p>Un piloto conoce a un <strong>niño</strong> de otro planeta.</p>",
	"videoDescription": "Video introductorio.",
	"aiConfig": {
		"systemPrompt": "Eres un tutor de literatura.",
		"knowledgeBase": "<div>El principito cuida una rosa.<br>Vive en el asteroide B-612.</div>"
	},
	"flashcards": [
		{"question": "¿Quién es el zorro?", "answer": "<em>Un personaje</em> que pide ser domesticado."}
	],
	"quiz": [
		{"question": "¿Dónde vive?", "options": ["Tierra", "B-612"], "correctIndex": 1, "explanation": "Vive en el B-612."}
	],
	"knowledgeChunks": [
		{"id": "c1", "title": "El zorro", "content": "<ul><li>Domesticar es crear lazos.</li></ul>"}
	]
}`

func TestParse_CleansHTML(t *testing.T) {
	t.Parallel()

	lesson, err := Parse([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if strings.Contains(lesson.Summary, "<") {
		t.Errorf("summary still has markup: %q", lesson.Summary)
	}
	if !strings.Contains(lesson.Summary, "niño de otro planeta") {
		t.Errorf("summary text lost: %q", lesson.Summary)
	}

	kb := lesson.AIConfig.KnowledgeBase
	if strings.Contains(kb, "<") || !strings.Contains(kb, "asteroide B-612") {
		t.Errorf("knowledge base not cleaned: %q", kb)
	}

	if got := lesson.Flashcards[0].Answer; strings.Contains(got, "<em>") {
		t.Errorf("flashcard answer not cleaned: %q", got)
	}
	if got := lesson.KnowledgeChunks[0].Content; !strings.Contains(got, "Domesticar es crear lazos.") {
		t.Errorf("chunk content lost: %q", got)
	}
}

func TestParse_PlainTextUntouched(t *testing.T) {
	t.Parallel()

	lesson, err := Parse([]byte(`{"id": "l1", "summary": "  Texto sin marcado. 2 < 3 aqui.  "}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lesson.Summary != "Texto sin marcado. 2 < 3 aqui." {
		t.Errorf("summary = %q, want trimmed original", lesson.Summary)
	}
}

func TestParse_RequiresID(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`{"title": "sin id"}`)); err == nil {
		t.Error("expected error for export without id")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed export")
	}
}

type captureRepo struct {
	upserted *core.LessonContext
}

func (r *captureRepo) Get(ctx context.Context, id string) (*core.LessonContext, error) {
	return nil, nil
}
func (r *captureRepo) List(ctx context.Context) ([]core.LessonContext, error) { return nil, nil }
func (r *captureRepo) Upsert(ctx context.Context, lesson *core.LessonContext) error {
	r.upserted = lesson
	return nil
}

func TestImportFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lesson.json")
	if err := os.WriteFile(path, []byte(sampleExport), 0644); err != nil {
		t.Fatal(err)
	}

	repo := &captureRepo{}
	imp := NewImporter(repo)

	lesson, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if lesson.ID != "lesson-principito" {
		t.Errorf("id = %q", lesson.ID)
	}
	if repo.upserted == nil || repo.upserted.ID != lesson.ID {
		t.Error("lesson was not stored")
	}

	if _, err := imp.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

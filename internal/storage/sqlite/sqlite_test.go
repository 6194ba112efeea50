package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/gestasai/academy-tutor/internal/core"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestVaultRepo_CreateAndList(t *testing.T) {
	t.Parallel()
	repo := NewVaultRepo(testDB(t))
	ctx := context.Background()

	entries := []core.VaultEntry{
		{ID: "a", LessonID: "l1", Query: "q1", Response: "r1", CreatedAt: time.Now().UTC()},
		{ID: "b", LessonID: "l1", Query: "q2", Response: "r2", CreatedAt: time.Now().UTC()},
		{ID: "c", LessonID: "l2", Query: "q3", Response: "r3", CreatedAt: time.Now().UTC()},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create(%s): %v", e.ID, err)
		}
	}

	got, err := repo.ListByLesson(ctx, "l1")
	if err != nil {
		t.Fatalf("ListByLesson: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries for l1, want 2", len(got))
	}
	for _, e := range got {
		if e.LessonID != "l1" {
			t.Errorf("entry %s has lesson %q", e.ID, e.LessonID)
		}
	}

	if got, err := repo.ListByLesson(ctx, "missing"); err != nil || len(got) != 0 {
		t.Errorf("unknown lesson: got %d entries, err %v", len(got), err)
	}
}

func TestVaultRepo_DuplicateID(t *testing.T) {
	t.Parallel()
	repo := NewVaultRepo(testDB(t))
	ctx := context.Background()

	e := core.VaultEntry{ID: "a", LessonID: "l1", Query: "q", Response: "r", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, e); err == nil {
		t.Error("expected primary key violation on duplicate id")
	}
}

func TestSettingsRepo_RoundTrip(t *testing.T) {
	t.Parallel()
	repo := NewSettingsRepo(testDB(t))
	ctx := context.Background()

	// Missing row reads back as zero settings.
	s, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get on empty table: %v", err)
	}
	if s != (core.Settings{}) {
		t.Errorf("expected zero settings, got %+v", s)
	}

	want := core.Settings{GeminiAPIKey: "key-1", GeminiModel: "gemini-1.5-flash"}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s, err = repo.Get(ctx); err != nil || s != want {
		t.Fatalf("Get = %+v, %v; want %+v", s, err, want)
	}

	// Save again replaces, never grows a second row.
	want.GeminiModel = "gemini-1.5-pro"
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if s, err = repo.Get(ctx); err != nil || s != want {
		t.Fatalf("Get after update = %+v, %v; want %+v", s, err, want)
	}
}

func TestLessonRepo_UpsertAndGet(t *testing.T) {
	t.Parallel()
	repo := NewLessonRepo(testDB(t))
	ctx := context.Background()

	lesson := &core.LessonContext{
		ID:    "lesson-1",
		Title: "El Principito",
		Flashcards: []core.Flashcard{
			{Question: "¿Quién es el zorro?", Answer: "Un personaje que pide ser domesticado."},
		},
		Quiz: []core.QuizQuestion{
			{Question: "¿Dónde vive?", Options: []string{"a", "b"}, CorrectIndex: 1, Explanation: "exp"},
		},
		KnowledgeChunks: []core.KnowledgeChunk{
			{ID: "c1", Title: "El zorro", Content: "contenido"},
		},
	}
	if err := repo.Upsert(ctx, lesson); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "lesson-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored lesson")
	}
	if got.Title != lesson.Title || len(got.Flashcards) != 1 || len(got.Quiz) != 1 || len(got.KnowledgeChunks) != 1 {
		t.Errorf("lesson did not round-trip: %+v", got)
	}
	if got.Quiz[0].CorrectIndex != 1 {
		t.Errorf("quiz correct index = %d, want 1", got.Quiz[0].CorrectIndex)
	}

	// Upsert with the same id replaces the payload.
	lesson.Title = "El Principito (rev)"
	if err := repo.Upsert(ctx, lesson); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if got, err = repo.Get(ctx, "lesson-1"); err != nil || got.Title != "El Principito (rev)" {
		t.Errorf("Get after update = %+v, %v", got, err)
	}
}

func TestLessonRepo_GetMissing(t *testing.T) {
	t.Parallel()
	repo := NewLessonRepo(testDB(t))

	got, err := repo.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing lesson, got %+v", got)
	}
}

func TestLessonRepo_List(t *testing.T) {
	t.Parallel()
	repo := NewLessonRepo(testDB(t))
	ctx := context.Background()

	for _, l := range []*core.LessonContext{
		{ID: "b", Title: "Beta"},
		{ID: "a", Title: "Alfa"},
	} {
		if err := repo.Upsert(ctx, l); err != nil {
			t.Fatalf("Upsert(%s): %v", l.ID, err)
		}
	}

	lessons, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("got %d lessons, want 2", len(lessons))
	}
	if lessons[0].Title != "Alfa" || lessons[1].Title != "Beta" {
		t.Errorf("lessons not ordered by title: %q, %q", lessons[0].Title, lessons[1].Title)
	}
}

func TestLessonRepo_UpsertRequiresID(t *testing.T) {
	t.Parallel()
	repo := NewLessonRepo(testDB(t))

	if err := repo.Upsert(context.Background(), &core.LessonContext{Title: "no id"}); err == nil {
		t.Error("expected error for lesson without id")
	}
}

func TestMessagesRepo_WindowAndOrder(t *testing.T) {
	t.Parallel()
	repo := NewMessagesRepo(testDB(t))
	ctx := context.Background()

	msgs := []core.ChatMessage{
		{Role: core.RoleUser, Content: "first"},
		{Role: core.RoleAssistant, Content: "second", Type: core.ResultLocalMatch, Source: core.SourceFlashcard},
		{Role: core.RoleUser, Content: "third"},
		{Role: core.RoleAssistant, Content: "fourth", Type: core.ResultGenerated},
	}
	for _, m := range msgs {
		if err := repo.AddMessage(ctx, "s1", m); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
	}
	if err := repo.AddMessage(ctx, "other", core.ChatMessage{Role: core.RoleUser, Content: "noise"}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	// The window keeps the newest N but returns them oldest first.
	got, err := repo.GetMessages(ctx, "s1", 3)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d messages, want 3", len(got))
	}
	want := []string{"second", "third", "fourth"}
	for i, m := range got {
		if m.Content != want[i] {
			t.Errorf("message %d = %q, want %q", i, m.Content, want[i])
		}
	}
	if got[0].Type != core.ResultLocalMatch || got[0].Source != core.SourceFlashcard {
		t.Errorf("metadata did not round-trip: %+v", got[0])
	}
}

func TestMessagesRepo_EmptySession(t *testing.T) {
	t.Parallel()
	repo := NewMessagesRepo(testDB(t))

	got, err := repo.GetMessages(context.Background(), "nobody", 10)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no messages, got %d", len(got))
	}
}

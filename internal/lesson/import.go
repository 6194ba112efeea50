// Package lesson ingests CMS lesson exports into the local store. The
// editor emits JSON with HTML fragments left over from its rich-text
// fields; those are flattened to plain text here so the matcher and the
// prompt builder only ever see prose.
package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/inbucket/html2text"

	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/pkg/log"
)

type Importer struct {
	repo core.LessonRepository
}

func NewImporter(repo core.LessonRepository) *Importer {
	return &Importer{repo: repo}
}

// ImportFile parses a lesson export and upserts it into the store.
func (i *Importer) ImportFile(ctx context.Context, path string) (*core.LessonContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lesson export: %w", err)
	}

	lesson, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := i.repo.Upsert(ctx, lesson); err != nil {
		return nil, fmt.Errorf("store lesson: %w", err)
	}

	log.FromCtx(ctx).Info().Str("lesson", lesson.ID).Str("title", lesson.Title).
		Int("flashcards", len(lesson.Flashcards)).
		Int("chunks", len(lesson.KnowledgeChunks)).
		Msg("lesson imported")
	return lesson, nil
}

// Parse decodes a lesson export and cleans its prose fields.
func Parse(data []byte) (*core.LessonContext, error) {
	var lesson core.LessonContext
	if err := json.Unmarshal(data, &lesson); err != nil {
		return nil, fmt.Errorf("decode lesson export: %w", err)
	}
	if strings.TrimSpace(lesson.ID) == "" {
		return nil, errors.New("lesson export has no id")
	}

	lesson.Title = cleanProse(lesson.Title)
	lesson.Summary = cleanProse(lesson.Summary)
	lesson.VideoDescription = cleanProse(lesson.VideoDescription)
	lesson.AIConfig.KnowledgeBase = cleanProse(lesson.AIConfig.KnowledgeBase)

	for i := range lesson.Flashcards {
		lesson.Flashcards[i].Question = cleanProse(lesson.Flashcards[i].Question)
		lesson.Flashcards[i].Answer = cleanProse(lesson.Flashcards[i].Answer)
	}
	for i := range lesson.Quiz {
		lesson.Quiz[i].Question = cleanProse(lesson.Quiz[i].Question)
		lesson.Quiz[i].Explanation = cleanProse(lesson.Quiz[i].Explanation)
	}
	for i := range lesson.KnowledgeChunks {
		lesson.KnowledgeChunks[i].Content = cleanProse(lesson.KnowledgeChunks[i].Content)
	}

	return &lesson, nil
}

var htmlTagPattern = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// cleanProse flattens rich-text leftovers to plain text. Fields without
// markup pass through untouched apart from trimming.
func cleanProse(s string) string {
	if !htmlTagPattern.MatchString(s) {
		return strings.TrimSpace(s)
	}

	text, err := html2text.FromString(s, html2text.Options{
		OmitLinks:    true,
		TextOnly:     true,
		PrettyTables: false,
	})
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(text)
}

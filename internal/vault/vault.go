// Package vault is the persisted, lesson-scoped cache of previously
// approved answers. It sits between the curated lesson material and the
// generation provider: free like a local match, but only trusted for
// near-exact restatements of an already answered question.
package vault

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/internal/match"
	"github.com/gestasai/academy-tutor/pkg/log"
)

// ScoreFunc compares a learner query against a stored query.
type ScoreFunc func(a, b string) float64

type Vault struct {
	repo  core.VaultRepository
	score ScoreFunc
}

func New(repo core.VaultRepository, score ScoreFunc) *Vault {
	if score == nil {
		score = match.DefaultLexicon().Similarity
	}
	return &Vault{repo: repo, score: score}
}

// Search returns the first stored answer whose query scores above the
// vault threshold, or nil. Store errors degrade to a miss: the cache is
// best-effort and must never block the user-facing flow.
func (v *Vault) Search(ctx context.Context, query, lessonID string) *core.ResolutionResult {
	entries, err := v.repo.ListByLesson(ctx, lessonID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("lesson", lessonID).Msg("vault lookup failed, treating as miss")
		return nil
	}

	for _, entry := range entries {
		if v.score(query, entry.Query) > match.VaultThreshold {
			log.FromCtx(ctx).Debug().Str("entry", entry.ID).Msg("vault hit")
			return &core.ResolutionResult{
				Text: entry.Response,
				Type: core.ResultVaultMatch,
			}
		}
	}
	return nil
}

// Save persists a qualifying answer keyed by the original query. Write
// failures are logged and swallowed; the learner already has the answer.
func (v *Vault) Save(ctx context.Context, query, response, lessonID string) {
	entry := core.VaultEntry{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		Query:     query,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
	if err := v.repo.Create(ctx, entry); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("lesson", lessonID).Msg("vault write failed, answer not cached")
	}
}

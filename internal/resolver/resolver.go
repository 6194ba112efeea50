// Package resolver sequences the answer tiers by cost: curated lesson
// material, then the persisted answer vault, then the generation provider.
// The first hit wins and the chain never races tiers in parallel.
package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/internal/gateway"
	"github.com/gestasai/academy-tutor/internal/match"
	"github.com/gestasai/academy-tutor/pkg/log"
)

const vaultNote = "\n\n_Retrieved from lesson repository_"

// User-facing failure messages. The chat surface renders whatever text it
// receives, so every gateway failure must end up as one of these.
const (
	msgEmptyQuery = "Escribe una pregunta sobre la lección y la respondo encantado."
	msgNoAPIKey   = "El tutor aún no está configurado. Pide al administrador que complete la configuración de Gemini."
	msgQuota      = "Se agotó la cuota de consultas por el momento. Espera un minuto e inténtalo de nuevo."
	msgGeneric    = "No pude generar una respuesta ahora mismo. Inténtalo de nuevo en unos minutos."
)

type localMatcher interface {
	Match(query string, lesson *core.LessonContext) *core.ResolutionResult
}

type answerVault interface {
	Search(ctx context.Context, query, lessonID string) *core.ResolutionResult
	Save(ctx context.Context, query, response, lessonID string)
}

type Resolver struct {
	matcher localMatcher
	vault   answerVault
	gen     core.Generator
	lex     *match.Lexicon
}

func New(matcher localMatcher, vault answerVault, gen core.Generator, lex *match.Lexicon) *Resolver {
	if lex == nil {
		lex = match.DefaultLexicon()
	}
	return &Resolver{matcher: matcher, vault: vault, gen: gen, lex: lex}
}

// Resolve answers a learner question. It never returns an error: gateway
// failures are converted into a renderable error result at this boundary.
func (r *Resolver) Resolve(ctx context.Context, query string, lesson *core.LessonContext, history []core.ChatMessage) core.ResolutionResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return core.ResolutionResult{Text: msgEmptyQuery, Type: core.ResultError}
	}

	if res := r.matcher.Match(query, lesson); res != nil {
		log.FromCtx(ctx).Debug().Str("source", res.Source).Msg("resolved from lesson material")
		return *res
	}

	if lesson != nil {
		if res := r.vault.Search(ctx, query, lesson.ID); res != nil {
			res.Text += vaultNote
			return *res
		}
	}

	res, err := r.gen.Ask(ctx, query, lesson, history)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("generation failed")
		return core.ResolutionResult{Text: userMessage(err), Type: core.ResultError}
	}

	// Cache only real answers: an "I don't know" must not poison the
	// vault, and the key is the query as the learner typed it.
	if lesson != nil && !r.lex.IsNegative(res.Text) {
		r.vault.Save(ctx, query, res.Text, lesson.ID)
	}

	return res
}

func userMessage(err error) string {
	if errors.Is(err, gateway.ErrAPIKeyMissing) {
		return msgNoAPIKey
	}
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.RateLimited() {
		return msgQuota
	}
	return msgGeneric
}

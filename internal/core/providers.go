package core

import "context"

// Generator answers a learner question from lesson context plus conversation
// history by calling the external generation provider. The only component
// allowed to return an error to the orchestrator.
type Generator interface {
	Ask(ctx context.Context, query string, lesson *LessonContext, history []ChatMessage) (ResolutionResult, error)
	ListModels(ctx context.Context) ([]Model, error)
}

// Resolver is the tiered resolution entry point used by the transports.
// It never returns an error; failures become a renderable error result.
type Resolver interface {
	Resolve(ctx context.Context, query string, lesson *LessonContext, history []ChatMessage) ResolutionResult
}

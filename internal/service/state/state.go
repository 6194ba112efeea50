// Package state tracks the runtime choices a chat session can change:
// which lesson it is studying and, deployment-wide, which generation
// model the gateway uses.
package state

import (
	"context"
	"sync"

	"github.com/gestasai/academy-tutor/internal/core"
)

type TutorState struct {
	mu            sync.RWMutex
	lessonBySess  map[string]string
	defaultLesson string

	settings core.SettingsRepository
}

func New(settings core.SettingsRepository, defaultLesson string) *TutorState {
	return &TutorState{
		lessonBySess:  make(map[string]string),
		defaultLesson: defaultLesson,
		settings:      settings,
	}
}

func (s *TutorState) LessonID(sessionID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.lessonBySess[sessionID]; ok {
		return id
	}
	return s.defaultLesson
}

func (s *TutorState) SetLessonID(sessionID, lessonID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonBySess[sessionID] = lessonID
}

// ChangeModel persists the model choice so it survives restarts and is
// picked up by the gateway on its next call.
func (s *TutorState) ChangeModel(ctx context.Context, model string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	settings.GeminiModel = model
	return s.settings.Save(ctx, settings)
}

func (s *TutorState) CurrentModel(ctx context.Context) (string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.GeminiModel, nil
}

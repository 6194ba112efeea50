package command

import (
	"github.com/gestasai/academy-tutor/internal/core"
)

func NewCommands(
	state core.SessionState,
	lessons core.LessonRepository,
) []core.Command {
	return []core.Command{
		NewModelCommand(state),
		NewLessonCommand(state, lessons),
	}
}

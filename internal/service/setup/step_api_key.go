package setup

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects the Gemini API key
type APIKeyStep struct {
	input textinput.Model
}

func NewAPIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "AIza..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &APIKeyStep{
		input: ti,
	}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) Update(msg tea.Msg, state *SetupState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			state.EnvVars["GEMINI_API_KEY"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *SetupState) string {
	return "Enter your Gemini API Key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

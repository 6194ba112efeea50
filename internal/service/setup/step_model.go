package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/internal/gateway"
)

// staticSettings feeds the just-entered key to the gateway before
// anything has been persisted.
type staticSettings struct {
	key string
}

func (s staticSettings) Get(ctx context.Context) (core.Settings, error) {
	return core.Settings{GeminiAPIKey: s.key}, nil
}

func (s staticSettings) Save(ctx context.Context, _ core.Settings) error { return nil }

// ModelStep allows selection of the generation model from the live listing
type ModelStep struct {
	list     list.Model
	loading  bool
	fetching bool // Ensures we only trigger the API call once
	err      error
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select Generation Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) Update(msg tea.Msg, state *SetupState, width, height int) (Step, tea.Cmd) {
	// 1. Trigger fetch once when we enter the step
	if s.loading && !s.fetching {
		s.fetching = true
		apiKey := state.EnvVars["GEMINI_API_KEY"]

		return s, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client := gateway.New(staticSettings{key: apiKey})
			models, err := client.ListModels(ctx)
			if err != nil {
				return errMsg(err)
			}

			var items []list.Item
			for _, mod := range models {
				title := mod.Name
				if title == "" {
					title = mod.ID
				}
				items = append(items, item{
					id:    mod.ID,
					title: title,
					desc:  fmt.Sprintf("ID: %s", mod.ID),
				})
			}
			return modelsMsg(items)
		}
	}

	// Update list size
	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil // Return nil command to break the error loop

	case tea.KeyMsg:
		// If there's an error, allow retry with Enter
		if s.err != nil {
			if msg.String() == "enter" {
				s.err = nil
				s.loading = true
				s.fetching = false
				return s, nil
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars["GEMINI_MODEL"] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *SetupState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n(press enter to retry, ctrl+c to quit)\n"
	}
	if s.loading {
		return "Fetching models from Gemini...\n"
	}
	return s.list.View()
}

package gateway

import "github.com/gestasai/academy-tutor/internal/core"

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func providerRole(role string) string {
	if role == core.RoleAssistant {
		return "model"
	}
	return "user"
}

// buildContents converts the history window plus the current query into the
// provider's alternating user/model turns. Consecutive messages with the
// same role are merged into one turn; the API rejects repeated roles.
func buildContents(history []core.ChatMessage, query string) []content {
	var contents []content

	appendTurn := func(role, text string) {
		if text == "" {
			return
		}
		if n := len(contents); n > 0 && contents[n-1].Role == role {
			contents[n-1].Parts[0].Text += "\n\n" + text
			return
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: text}},
		})
	}

	for _, msg := range history {
		appendTurn(providerRole(msg.Role), msg.Content)
	}
	appendTurn("user", query)

	return contents
}

// inlineInstruction folds the system prompt into the first user turn, for
// models that reject a separate instruction channel.
func inlineInstruction(contents []content, instruction string) []content {
	if instruction == "" {
		return contents
	}

	out := make([]content, len(contents))
	copy(out, contents)

	for i := range out {
		if out[i].Role != "user" {
			continue
		}
		parts := make([]part, len(out[i].Parts))
		copy(parts, out[i].Parts)
		parts[0].Text = instruction + "\n\n" + parts[0].Text
		out[i].Parts = parts
		return out
	}

	return append([]content{{Role: "user", Parts: []part{{Text: instruction}}}}, out...)
}

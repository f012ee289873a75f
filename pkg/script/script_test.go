package script

import (
	"context"
	"testing"

	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/stretchr/testify/require"
)

type mockCompleter struct {
	response string
	err      error

	lastMessages []provider.Message
}

func (m *mockCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	m.lastMessages = messages

	if m.err != nil {
		return nil, m.err
	}

	return &provider.Completion{
		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: []provider.Content{{Text: m.response}},
		},
	}, nil
}

func TestScript(t *testing.T) {
	t.Run("generates labeled dialogue", func(t *testing.T) {
		mock := &mockCompleter{response: "Chris: Hello.\nJenna: Hi there."}
		generator := NewGenerator(mock)

		result, err := generator.Script(t.Context(), ScriptRequest{Topic: "digital marketing"})
		require.NoError(t, err)
		require.Equal(t, "Chris: Hello.\nJenna: Hi there.", result)

		require.Len(t, mock.lastMessages, 2)
		require.Equal(t, provider.MessageRoleSystem, mock.lastMessages[0].Role)
		require.Contains(t, mock.lastMessages[1].Text(), "digital marketing")
	})

	t.Run("includes host names in prompt", func(t *testing.T) {
		mock := &mockCompleter{response: "Alex: hi"}
		generator := NewGenerator(mock, WithHosts("Alex", "Sam"))

		_, err := generator.Script(t.Context(), ScriptRequest{Topic: "fintech"})
		require.NoError(t, err)

		prompt := mock.lastMessages[1].Text()
		require.Contains(t, prompt, "Alex")
		require.Contains(t, prompt, "Sam")
	})

	t.Run("rejects missing topic", func(t *testing.T) {
		generator := NewGenerator(&mockCompleter{})

		_, err := generator.Script(t.Context(), ScriptRequest{})
		require.Error(t, err)
		require.Equal(t, provider.ErrorKindValidation, provider.KindOf(err))
	})

	t.Run("propagates provider error", func(t *testing.T) {
		mock := &mockCompleter{err: provider.NewFatalError("boom")}
		generator := NewGenerator(mock)

		_, err := generator.Script(t.Context(), ScriptRequest{Topic: "x"})
		require.Error(t, err)
	})

	t.Run("empty completion is an error", func(t *testing.T) {
		mock := &mockCompleter{response: ""}
		generator := NewGenerator(mock)

		_, err := generator.Script(t.Context(), ScriptRequest{Topic: "x"})
		require.Error(t, err)
	})
}

func TestAnswer(t *testing.T) {
	t.Run("includes question and context", func(t *testing.T) {
		mock := &mockCompleter{response: "Chris: Great question."}
		generator := NewGenerator(mock)

		result, err := generator.Answer(t.Context(), "What about pricing?", "We discussed plans.")
		require.NoError(t, err)
		require.Equal(t, "Chris: Great question.", result)

		prompt := mock.lastMessages[1].Text()
		require.Contains(t, prompt, "What about pricing?")
		require.Contains(t, prompt, "We discussed plans.")
	})

	t.Run("rejects empty question", func(t *testing.T) {
		generator := NewGenerator(&mockCompleter{})

		_, err := generator.Answer(t.Context(), "  ", "context")
		require.Error(t, err)
		require.Equal(t, provider.ErrorKindValidation, provider.KindOf(err))
	})
}

func TestResearch(t *testing.T) {
	t.Run("generates summary", func(t *testing.T) {
		mock := &mockCompleter{response: "- benefit one"}
		generator := NewGenerator(mock)

		result, err := generator.Research(t.Context(), "logistics")
		require.NoError(t, err)
		require.Equal(t, "- benefit one", result)
	})

	t.Run("rejects empty topic", func(t *testing.T) {
		generator := NewGenerator(&mockCompleter{})

		_, err := generator.Research(t.Context(), "")
		require.Error(t, err)
	})
}

package voice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		_, err := NewAssignment("Chris", map[string]string{
			"Chris": "voice-a",
			"Jenna": "voice-b",
		})

		require.NoError(t, err)
	})

	t.Run("rejects shared voice", func(t *testing.T) {
		_, err := NewAssignment("Chris", map[string]string{
			"Chris": "voice-a",
			"Jenna": "voice-a",
		})

		require.Error(t, err)
	})

	t.Run("rejects missing default", func(t *testing.T) {
		_, err := NewAssignment("Chris", map[string]string{
			"Jenna": "voice-b",
		})

		require.Error(t, err)
	})

	t.Run("rejects empty table", func(t *testing.T) {
		_, err := NewAssignment("Chris", nil)
		require.Error(t, err)
	})

	t.Run("rejects empty voice", func(t *testing.T) {
		_, err := NewAssignment("Chris", map[string]string{
			"Chris": "",
		})

		require.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	assignment, err := NewAssignment("Chris", map[string]string{
		"Chris": "voice-a",
		"Jenna": "voice-b",
	})
	require.NoError(t, err)

	t.Run("distinct voices per speaker", func(t *testing.T) {
		require.NotEqual(t, assignment.Resolve("Chris"), assignment.Resolve("Jenna"))
	})

	t.Run("deterministic", func(t *testing.T) {
		for range 10 {
			require.Equal(t, "voice-a", assignment.Resolve("Chris"))
			require.Equal(t, "voice-b", assignment.Resolve("Jenna"))
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		require.Equal(t, "voice-b", assignment.Resolve("JENNA"))
	})

	t.Run("unknown speaker uses default voice", func(t *testing.T) {
		require.Equal(t, "voice-a", assignment.Resolve("Moderator"))
	})
}

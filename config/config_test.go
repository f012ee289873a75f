package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlindh/studiocast/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	return path
}

func TestParse(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	path := writeConfig(t, `
providers:
  - type: openai
    token: ${TEST_OPENAI_KEY}

    models:
      gpt-4o:
        type: completer

      tts-1:
        type: synthesizer
        limit: 3

studio:
  completer: gpt-4o
  synthesizer: tts-1

  hosts:
    - name: Chris
      voice: voice-a
    - name: Jenna
      voice: voice-b
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)

	_, err = cfg.Completer("gpt-4o")
	require.NoError(t, err)

	_, err = cfg.Synthesizer("tts-1")
	require.NoError(t, err)

	_, err = cfg.Completer("unknown")
	require.Error(t, err)

	require.NotNil(t, cfg.Scripts)
	require.NotNil(t, cfg.Studio)
	require.NotNil(t, cfg.Sessions)
}

func TestParseAddress(t *testing.T) {
	path := writeConfig(t, `
address: :9090
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Address)
}

func TestParseUnknownField(t *testing.T) {
	path := writeConfig(t, `
gadgets:
  - type: unknown
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}

func TestParseInvalidProviderType(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: acme
    models:
      foo:
        type: completer
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}

func TestParseStudioRequiresHosts(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: openai
    models:
      tts-1:
        type: synthesizer

studio:
  synthesizer: tts-1
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}

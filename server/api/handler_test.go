package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jlindh/studiocast/config"
	"github.com/jlindh/studiocast/pkg/playback"
	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/script"
	"github.com/jlindh/studiocast/pkg/studio"
	"github.com/jlindh/studiocast/pkg/synth"
	"github.com/jlindh/studiocast/pkg/transcript"
	"github.com/jlindh/studiocast/pkg/voice"
	"github.com/jlindh/studiocast/server"

	"github.com/stretchr/testify/require"
)

type testCompleter struct {
	text string
}

func (c *testCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	message := provider.AssistantMessage(c.text)

	return &provider.Completion{
		Reason: provider.CompletionReasonStop,

		Message: &message,
	}, nil
}

type testSynthesizer struct{}

func (s *testSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	return &provider.Synthesis{
		Content:     []byte(input + "\n"),
		ContentType: "audio/mpeg",
	}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	parser, err := transcript.NewParser("Chris", "Chris", "Jenna")
	require.NoError(t, err)

	assignment, err := voice.NewAssignment("Chris", map[string]string{
		"Chris": "voice-a",
		"Jenna": "voice-b",
	})
	require.NoError(t, err)

	engine := synth.NewEngine(&testSynthesizer{}, assignment)

	cfg := &config.Config{
		Scripts: script.NewGenerator(&testCompleter{text: "Chris: Hello.\nJenna: Hi there."}),
		Studio:  studio.New(parser, engine),

		Sessions: playback.NewRegistry(),
	}

	s, err := server.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	return srv
}

func postJson(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)

	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestPodcastScript(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/podcast/script", map[string]any{
		"topic": "cloud storage",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Script string `json:"script"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Contains(t, result.Script, "Chris:")
	require.Contains(t, result.Script, "Jenna:")
}

func TestPodcastScriptRequiresTopic(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/podcast/script", map[string]any{})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPodcastAudio(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/podcast/audio", map[string]any{
		"script": "Chris: Hello.\nJenna: Hi there.",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "Hello.\nHi there.\n", string(data))
}

func TestPodcastProduceUnconfigured(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/podcast/produce", map[string]any{
		"input": "quantum computing",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResearch(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/research", map[string]any{
		"topic": "edge computing",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Content string `json:"content"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotEmpty(t, result.Content)
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/sessions", map[string]any{
		"script": "Chris: Hello.\nJenna: Hi there.",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session struct {
		ID   string `json:"id"`
		Mode string `json:"mode"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NotEmpty(t, session.ID)
	require.Equal(t, "paused", session.Mode)

	resp = postJson(t, srv.URL+"/v1/sessions/"+session.ID+"/play", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJson(t, srv.URL+"/v1/sessions/"+session.ID+"/pause", map[string]any{
		"position": 42.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state struct {
		Mode     string  `json:"mode"`
		Position float64 `json:"position"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Equal(t, "paused", state.Mode)
	require.Equal(t, 42.0, state.Position)
}

func TestSessionQuestion(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/sessions", map[string]any{
		"script": "Chris: Hello.\nJenna: Hi there.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session struct {
		ID string `json:"id"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))

	resp = postJson(t, srv.URL+"/v1/sessions/"+session.ID+"/question", map[string]any{
		"question": "Why does this matter?",
		"position": 17.5,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
	require.Equal(t, "17.500", resp.Header.Get("X-Resume-Position"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestSessionNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := postJson(t, srv.URL+"/v1/sessions/unknown/play", map[string]any{})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

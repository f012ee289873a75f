package client

import (
	"context"
	"io"
)

type PodcastService struct {
	Options []RequestOption
}

func NewPodcastService(opts ...RequestOption) PodcastService {
	return PodcastService{
		Options: opts,
	}
}

type ScriptRequest struct {
	Topic    string `json:"topic"`
	Prospect string `json:"prospect,omitempty"`
	Question string `json:"question,omitempty"`
}

type Audio struct {
	Content     []byte
	ContentType string
}

type Production struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`

	Transcript string `json:"transcript,omitempty"`
}

func (r *PodcastService) Script(ctx context.Context, input ScriptRequest, opts ...RequestOption) (string, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	var result struct {
		Script string `json:"script"`
	}

	if err := cfg.doJson(ctx, "/v1/podcast/script", input, &result); err != nil {
		return "", err
	}

	return result.Script, nil
}

func (r *PodcastService) Audio(ctx context.Context, script string, opts ...RequestOption) (*Audio, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := struct {
		Script string `json:"script"`
	}{
		Script: script,
	}

	resp, err := cfg.do(ctx, "/v1/podcast/audio", body)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &Audio{
		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (r *PodcastService) Produce(ctx context.Context, input string, opts ...RequestOption) (*Production, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := struct {
		Input string `json:"input"`
	}{
		Input: input,
	}

	var result Production

	if err := cfg.doJson(ctx, "/v1/podcast/produce", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

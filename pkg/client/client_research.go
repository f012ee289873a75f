package client

import (
	"context"
)

type ResearchService struct {
	Options []RequestOption
}

func NewResearchService(opts ...RequestOption) ResearchService {
	return ResearchService{
		Options: opts,
	}
}

func (r *ResearchService) New(ctx context.Context, topic string, opts ...RequestOption) (string, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := struct {
		Topic string `json:"topic"`
	}{
		Topic: topic,
	}

	var result struct {
		Content string `json:"content"`
	}

	if err := cfg.doJson(ctx, "/v1/research", body, &result); err != nil {
		return "", err
	}

	return result.Content, nil
}

package client

import (
	"context"
	"io"
	"strconv"
)

type SessionService struct {
	Options []RequestOption
}

func NewSessionService(opts ...RequestOption) SessionService {
	return SessionService{
		Options: opts,
	}
}

type Session struct {
	ID string `json:"id"`

	Mode     string  `json:"mode"`
	Position float64 `json:"position"`
}

type Answer struct {
	Content     []byte
	ContentType string

	// ResumePosition is where main playback continues, in seconds.
	ResumePosition float64
}

func (r *SessionService) New(ctx context.Context, script string, opts ...RequestOption) (*Session, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := struct {
		Script string `json:"script"`
	}{
		Script: script,
	}

	var result Session

	if err := cfg.doJson(ctx, "/v1/sessions", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *SessionService) Play(ctx context.Context, id string, opts ...RequestOption) (*Session, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	var result Session

	if err := cfg.doJson(ctx, "/v1/sessions/"+id+"/play", struct{}{}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *SessionService) Pause(ctx context.Context, id string, position float64, opts ...RequestOption) (*Session, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := struct {
		Position float64 `json:"position"`
	}{
		Position: position,
	}

	var result Session

	if err := cfg.doJson(ctx, "/v1/sessions/"+id+"/pause", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *SessionService) Question(ctx context.Context, id, question string, position float64, opts ...RequestOption) (*Answer, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := struct {
		Question string  `json:"question"`
		Position float64 `json:"position"`
	}{
		Question: question,
		Position: position,
	}

	resp, err := cfg.do(ctx, "/v1/sessions/"+id+"/question", body)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	resume, _ := strconv.ParseFloat(resp.Header.Get("X-Resume-Position"), 64)

	return &Answer{
		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),

		ResumePosition: resume,
	}, nil
}

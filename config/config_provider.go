package config

import (
	"errors"
	"strings"
	"time"

	"github.com/jlindh/studiocast/pkg/limiter"
	"github.com/jlindh/studiocast/pkg/otel"
	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/provider/anthropic"
	"github.com/jlindh/studiocast/pkg/provider/elevenlabs"
	"github.com/jlindh/studiocast/pkg/provider/openai"
	"github.com/jlindh/studiocast/pkg/provider/playai"
	"github.com/jlindh/studiocast/pkg/provider/replicate"
)

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	User string `yaml:"user"`

	Attempts *int   `yaml:"attempts"`
	Interval string `yaml:"interval"`

	Models map[string]modelConfig `yaml:"models"`
}

type modelConfig struct {
	Type string `yaml:"type"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) RegisterCompleter(id string, p provider.Completer) {
	if cfg.completer == nil {
		cfg.completer = make(map[string]provider.Completer)
	}

	if _, ok := cfg.completer[""]; !ok {
		cfg.completer[""] = p
	}

	cfg.completer[id] = p
}

func (cfg *Config) Completer(id string) (provider.Completer, error) {
	if cfg.completer != nil {
		if p, ok := cfg.completer[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("completer not found: " + id)
}

func (cfg *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	if cfg.synthesizer == nil {
		cfg.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := cfg.synthesizer[""]; !ok {
		cfg.synthesizer[""] = p
	}

	cfg.synthesizer[id] = p
}

func (cfg *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if cfg.synthesizer != nil {
		if p, ok := cfg.synthesizer[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (cfg *Config) RegisterProducer(id string, p provider.Producer) {
	if cfg.producer == nil {
		cfg.producer = make(map[string]provider.Producer)
	}

	if _, ok := cfg.producer[""]; !ok {
		cfg.producer[""] = p
	}

	cfg.producer[id] = p
}

func (cfg *Config) Producer(id string) (provider.Producer, error) {
	if cfg.producer != nil {
		if p, ok := cfg.producer[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("producer not found: " + id)
}

func (cfg *Config) registerProviders(f *configFile) error {
	for _, p := range f.Providers {
		for id, m := range p.Models {
			switch strings.ToLower(m.Type) {
			case "", "completer":
				completer, err := createCompleter(p, id)

				if err != nil {
					return err
				}

				if limit := createLimiter(m.Limit); limit != nil {
					completer = limiter.NewCompleter(limit, completer)
				}

				if _, ok := completer.(otel.Completer); !ok {
					completer = otel.NewCompleter(p.Type, id, completer)
				}

				cfg.RegisterCompleter(id, completer)

			case "synthesizer":
				synthesizer, err := createSynthesizer(p, id)

				if err != nil {
					return err
				}

				if limit := createLimiter(m.Limit); limit != nil {
					synthesizer = limiter.NewSynthesizer(limit, synthesizer)
				}

				if _, ok := synthesizer.(otel.Synthesizer); !ok {
					synthesizer = otel.NewSynthesizer(p.Type, id, synthesizer)
				}

				cfg.RegisterSynthesizer(id, synthesizer)

			case "producer":
				producer, err := createProducer(p)

				if err != nil {
					return err
				}

				cfg.RegisterProducer(id, producer)

			default:
				return errors.New("invalid model type: " + m.Type)
			}
		}
	}

	return nil
}

func createCompleter(cfg providerConfig, model string) (provider.Completer, error) {
	switch strings.ToLower(cfg.Type) {
	case "openai":
		var options []openai.Option

		if cfg.Token != "" {
			options = append(options, openai.WithToken(cfg.Token))
		}

		return openai.NewCompleter(cfg.URL, model, options...)

	case "anthropic":
		var options []anthropic.Option

		if cfg.Token != "" {
			options = append(options, anthropic.WithToken(cfg.Token))
		}

		return anthropic.NewCompleter(cfg.URL, model, options...)

	default:
		return nil, errors.New("invalid completer provider: " + cfg.Type)
	}
}

func createSynthesizer(cfg providerConfig, model string) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "openai":
		var options []openai.Option

		if cfg.Token != "" {
			options = append(options, openai.WithToken(cfg.Token))
		}

		return openai.NewSynthesizer(cfg.URL, model, options...)

	case "elevenlabs":
		var options []elevenlabs.Option

		if cfg.Token != "" {
			options = append(options, elevenlabs.WithToken(cfg.Token))
		}

		return elevenlabs.NewSynthesizer(cfg.URL, model, options...)

	case "replicate":
		var options []replicate.Option

		if cfg.Token != "" {
			options = append(options, replicate.WithToken(cfg.Token))
		}

		return replicate.NewSynthesizer(model, options...)

	default:
		return nil, errors.New("invalid synthesizer provider: " + cfg.Type)
	}
}

func createProducer(cfg providerConfig) (provider.Producer, error) {
	switch strings.ToLower(cfg.Type) {
	case "playai":
		var options []playai.Option

		if cfg.Token != "" {
			options = append(options, playai.WithToken(cfg.Token))
		}

		if cfg.User != "" {
			options = append(options, playai.WithUser(cfg.User))
		}

		if cfg.Attempts != nil {
			interval := 2 * time.Second

			if cfg.Interval != "" {
				val, err := time.ParseDuration(cfg.Interval)

				if err != nil {
					return nil, err
				}

				interval = val
			}

			options = append(options, playai.WithPolling(*cfg.Attempts, interval))
		}

		return playai.NewProducer(cfg.URL, options...)

	default:
		return nil, errors.New("invalid producer provider: " + cfg.Type)
	}
}

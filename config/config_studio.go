package config

import (
	"errors"
	"time"

	"github.com/jlindh/studiocast/pkg/audio"
	"github.com/jlindh/studiocast/pkg/script"
	"github.com/jlindh/studiocast/pkg/studio"
	"github.com/jlindh/studiocast/pkg/synth"
	"github.com/jlindh/studiocast/pkg/transcript"
	"github.com/jlindh/studiocast/pkg/voice"
)

type studioConfig struct {
	Completer   string `yaml:"completer"`
	Synthesizer string `yaml:"synthesizer"`

	Hosts []hostConfig `yaml:"hosts"`

	Music  string       `yaml:"music"`
	Mixing mixingConfig `yaml:"mixing"`

	Concurrency *int    `yaml:"concurrency"`
	Attempts    *int    `yaml:"attempts"`
	Retry       string  `yaml:"retry"`

	Stability  *float32 `yaml:"stability"`
	Similarity *float32 `yaml:"similarity"`
}

type hostConfig struct {
	Name  string `yaml:"name"`
	Voice string `yaml:"voice"`
}

type mixingConfig struct {
	FadeIn  string `yaml:"fadein"`
	FadeOut string `yaml:"fadeout"`

	Volume *float64 `yaml:"volume"`
}

func (cfg *Config) registerStudio(f *configFile) error {
	config := f.Studio

	if config.Completer != "" {
		completer, err := cfg.Completer(config.Completer)

		if err != nil {
			return err
		}

		var options []script.Option

		if len(config.Hosts) >= 2 {
			options = append(options, script.WithHosts(config.Hosts[0].Name, config.Hosts[1].Name))
		}

		cfg.Scripts = script.NewGenerator(completer, options...)
	}

	if config.Synthesizer == "" {
		return nil
	}

	if len(config.Hosts) == 0 {
		return errors.New("studio requires at least one host")
	}

	synthesizer, err := cfg.Synthesizer(config.Synthesizer)

	if err != nil {
		return err
	}

	names := make([]string, 0, len(config.Hosts))
	voices := map[string]string{}

	for _, h := range config.Hosts {
		names = append(names, h.Name)
		voices[h.Name] = h.Voice
	}

	parser, err := transcript.NewParser(names[0], names...)

	if err != nil {
		return err
	}

	assignment, err := voice.NewAssignment(names[0], voices)

	if err != nil {
		return err
	}

	var options []synth.Option

	if config.Concurrency != nil {
		options = append(options, synth.WithConcurrency(*config.Concurrency))
	}

	if config.Attempts != nil {
		options = append(options, synth.WithMaxAttempts(*config.Attempts))
	}

	if config.Retry != "" {
		val, err := time.ParseDuration(config.Retry)

		if err != nil {
			return err
		}

		options = append(options, synth.WithRetryBase(val))
	}

	if config.Stability != nil && config.Similarity != nil {
		options = append(options, synth.WithVoiceSettings(*config.Stability, *config.Similarity))
	}

	engine := synth.NewEngine(synthesizer, assignment, options...)

	var studioOptions []studio.Option

	if config.Music != "" {
		mixer, err := audio.NewMixer()

		if err != nil {
			return err
		}

		spec, err := createMixSpec(config.Mixing)

		if err != nil {
			return err
		}

		studioOptions = append(studioOptions, studio.WithMusic(mixer, config.Music, spec))
	}

	cfg.Studio = studio.New(parser, engine, studioOptions...)

	return nil
}

func createMixSpec(cfg mixingConfig) (audio.MixSpec, error) {
	spec := audio.DefaultMixSpec()

	if cfg.FadeIn != "" {
		val, err := time.ParseDuration(cfg.FadeIn)

		if err != nil {
			return spec, err
		}

		spec.FadeIn = val
	}

	if cfg.FadeOut != "" {
		val, err := time.ParseDuration(cfg.FadeOut)

		if err != nil {
			return spec, err
		}

		spec.FadeOut = val
	}

	if cfg.Volume != nil {
		spec.MusicVolume = *cfg.Volume
	}

	return spec, nil
}

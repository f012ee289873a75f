package config

import (
	"bytes"
	"os"

	"github.com/jlindh/studiocast/pkg/auth"
	"github.com/jlindh/studiocast/pkg/playback"
	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/script"
	"github.com/jlindh/studiocast/pkg/studio"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Authorizers []auth.Provider

	completer   map[string]provider.Completer
	synthesizer map[string]provider.Synthesizer
	producer    map[string]provider.Producer

	Scripts *script.Generator
	Studio  *studio.Studio

	Sessions *playback.Registry
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",

		Sessions: playback.NewRegistry(),
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerProviders(file); err != nil {
		return nil, err
	}

	if err := c.registerStudio(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Providers []providerConfig `yaml:"providers"`

	Studio studioConfig `yaml:"studio"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}

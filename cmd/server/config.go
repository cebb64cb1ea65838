package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type config struct {
	Port        string `yaml:"port"`
	Model       string `yaml:"model"`
	ProfilePath string `yaml:"profilePath"`

	// TranscriptPath enables the bbolt transcript store when set.
	TranscriptPath string `yaml:"transcriptPath"`
}

func loadConfig(path string) (config, error) {
	f, err := os.Open(path)
	if err != nil {
		return config{}, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	cfg := config{}
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("error decoding config file: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ProfilePath == "" {
		cfg.ProfilePath = "profile.yaml"
	}

	return cfg, nil
}

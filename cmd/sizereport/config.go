package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type binaryConfig struct {
	Name   string `toml:"name"`
	Target string `toml:"target"`
	Base   string `toml:"base"`
}

type fileConfig struct {
	Jobs     int            `toml:"jobs"`
	Binaries []binaryConfig `toml:"binary"`
}

type reportConfig struct {
	Jobs     int
	Binaries []binaryConfig
}

const defaultJobs = 4

func loadConfig(path string) (reportConfig, error) {
	cfg := reportConfig{Jobs: defaultJobs}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return reportConfig{}, fmt.Errorf("load size report config: %w", err)
	}

	if meta.IsDefined("jobs") {
		if raw.Jobs < 1 {
			return reportConfig{}, fmt.Errorf("jobs must be positive, got %d", raw.Jobs)
		}
		cfg.Jobs = raw.Jobs
	}

	if len(raw.Binaries) == 0 {
		return reportConfig{}, fmt.Errorf("config %s declares no [[binary]] entries", path)
	}
	for i, b := range raw.Binaries {
		b.Target = strings.TrimSpace(b.Target)
		b.Base = strings.TrimSpace(b.Base)
		if b.Target == "" {
			return reportConfig{}, fmt.Errorf("binary entry %d has no target", i)
		}
		if strings.TrimSpace(b.Name) == "" {
			b.Name = filepath.Base(b.Target)
		}
		cfg.Binaries = append(cfg.Binaries, b)
	}
	return cfg, nil
}

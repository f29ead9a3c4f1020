package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"sigs.k8s.io/yaml"

	"github.com/quizmin/quizmin/pkg/api/quizmin"
	"github.com/quizmin/quizmin/pkg/ilp"
)

const defaultConfigName = "quizmin.yaml"

// loadConfig reads the given config file. Without an explicit path it falls
// back to quizmin.yaml in the working directory, then to the xdg config
// home, and finally to an empty config.
func loadConfig(file string) (*quizmin.Config, error) {
	if file == "" {
		if _, err := os.Stat(defaultConfigName); err == nil {
			file = defaultConfigName
		} else if found, err := xdg.SearchConfigFile(filepath.Join("quizmin", defaultConfigName)); err == nil {
			file = found
		} else {
			return &quizmin.Config{}, nil
		}
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := &quizmin.Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %v", file, err)
	}
	return cfg, nil
}

// buildOpts translates a config file into builder options. Flags are applied
// on top by the individual commands.
func buildOpts(cfg *quizmin.Config) ilp.BuildOpts {
	opts := ilp.BuildOpts{
		Mode:               ilp.ExactCover,
		Threshold:          cfg.Coverage.Threshold,
		CategoryThresholds: cfg.Coverage.Thresholds,
		AllowRegex:         cfg.Allow,
		DenyRegex:          cfg.Deny,
		PrefixClosure:      cfg.PrefixClosure,
	}
	if cfg.Mode != "" {
		opts.Mode = ilp.Mode(cfg.Mode)
	}
	if cfg.Cost != "" {
		opts.Cost = ilp.CostFunc(cfg.Cost)
	}
	return opts
}

func parseCategoryThresholds(entries []string) (map[string]float64, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	thresholds := map[string]float64{}
	for _, entry := range entries {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid category threshold %q, expected <category>=<fraction>", entry)
		}
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category threshold %q: %v", entry, err)
		}
		thresholds[parts[0]] = value
	}
	return thresholds, nil
}

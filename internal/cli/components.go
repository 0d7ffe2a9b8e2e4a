package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/jmfreder123/az-boards/internal/cache"
	"github.com/jmfreder123/az-boards/internal/classify"
	"github.com/jmfreder123/az-boards/internal/extract"
	"github.com/jmfreder123/az-boards/internal/match"
	"github.com/jmfreder123/az-boards/internal/model"
	"github.com/jmfreder123/az-boards/internal/pipeline"
)

// loadConfig merges file/env configuration over the built-in defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// loadResolver builds the district resolver from the configured fragment
// table, or the embedded default when no override is set.
func loadResolver(cfg *model.Config) (*match.Resolver, error) {
	var (
		table *match.Table
		err   error
	)
	if cfg.Paths.Fragments != "" {
		table, err = match.LoadTable(cfg.Paths.Fragments)
	} else {
		table, err = match.DefaultTable()
	}
	if err != nil {
		return nil, err
	}
	return match.NewResolver(table), nil
}

// loadClassifier builds the race classifier over the resolver.
func loadClassifier(cfg *model.Config, resolver *match.Resolver) (*classify.Classifier, error) {
	var (
		kw  *classify.Keywords
		err error
	)
	if cfg.Paths.Keywords != "" {
		kw, err = classify.LoadKeywords(cfg.Paths.Keywords)
	} else {
		kw, err = classify.DefaultKeywords()
	}
	if err != nil {
		return nil, err
	}
	return classify.New(kw, resolver), nil
}

// buildEngine assembles the full gap-fill engine.
func buildEngine(cfg *model.Config) (*pipeline.Engine, error) {
	resolver, err := loadResolver(cfg)
	if err != nil {
		return nil, err
	}
	classifier, err := loadClassifier(cfg, resolver)
	if err != nil {
		return nil, err
	}
	extractor := extract.NewExtractor(classifier)

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	fetcher := pipeline.NewFetcher(cfg.HTTP, cfg.Workers, store)

	return pipeline.NewEngine(cfg, fetcher, extractor, resolver, os.Stderr), nil
}

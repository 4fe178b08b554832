package main

import (
	"github.com/eringen/paperblog/config"
	"github.com/eringen/paperblog/logging"
	"github.com/eringen/paperblog/site"
)

// load reads the configuration, configures logging and installs the site
// record for the rest of the process.
func load() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Configure(logging.Config{Level: cfg.Log.Level, Version: Version})
	if err := site.Set(cfg.Site); err != nil {
		return nil, err
	}
	return cfg, nil
}

package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/mattn/go-isatty"
)

// config is read from the environment.
type config struct {
	// Lang selects the message language. ENV: NAMEDARGS_LANG
	Lang string `env:"NAMEDARGS_LANG,default=en"`
	// Color is auto, always or never. ENV: NAMEDARGS_COLOR
	Color string `env:"NAMEDARGS_COLOR,default=auto"`
	// LogLevel is debug, info, warn or error. ENV: NAMEDARGS_LOG_LEVEL
	LogLevel string `env:"NAMEDARGS_LOG_LEVEL,default=warn"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return config{}, err
	}
	return cfg, nil
}

func (c config) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func (c config) colorize(f *os.File) bool {
	switch strings.ToLower(c.Color) {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

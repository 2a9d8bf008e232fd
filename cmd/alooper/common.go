// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"log/slog"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/ik5/audloop"
	"github.com/ik5/audloop/internal/config"
	"github.com/ik5/audloop/loader"
	"github.com/ik5/audloop/playlist"
)

func defaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// newLogger writes text records to w. verbose lowers the level to debug
// regardless of the configured one.
func newLogger(w io.Writer, cfg config.Config, verbose bool) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newLoader(cfg config.Config, log *slog.Logger) *loader.Loader {
	return loader.New(audloop.DefaultRegistry(), loader.Options{
		MaxSamples: cfg.MaxSamples,
		Logger:     log,
	})
}

func newStore(cfg config.Config, log *slog.Logger) *playlist.Store {
	return playlist.NewStore(cfg.PlaylistFile, log)
}

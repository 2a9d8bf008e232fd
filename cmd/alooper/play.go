// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/ik5/audloop/internal/config"
	"github.com/ik5/audloop/playback"
	"github.com/ik5/audloop/playlist"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type PlayParams struct {
	Files        []string `pos:"true" optional:"true" help:"Files to play. With more than one, they form a playlist."`
	Playlist     string   `short:"p" optional:"true" help:"Name of a saved playlist to play."`
	Backwards    bool     `short:"b" optional:"true" help:"Play backwards."`
	Gain         float64  `short:"g" optional:"true" help:"Output gain in dB." default:"0"`
	LoopPlaylist bool     `short:"l" optional:"true" help:"Move to the next entry when a clip ends, instead of looping it."`
	Retain       bool     `optional:"true" help:"Keep playing the previous clip when a load fails."`
	Rate         int      `short:"r" optional:"true" help:"Device sample rate in Hz. 0 uses ALOOPER_SAMPLE_RATE." default:"0"`
	Verbose      bool     `short:"v" optional:"true" help:"Log debug output."`
}

func PlayCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:   "play [files...]",
		Short: "Loop files or a saved playlist until interrupted",
		Long: `Decode each file fully into memory, convert it to the device rate and
loop it. With --loop-playlist the player moves through the entries in order,
wrapping after the last. When --playlist is given, edits to the saved
playlist are picked up at the next clip end.`,
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			cfg := config.Load()
			log := newLogger(os.Stderr, cfg, params.Verbose)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runPlay(ctx, params, cfg, log); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func applyPlayFlags(params *PlayParams, cfg *config.Config) {
	if params.Rate > 0 {
		cfg.SampleRate = params.Rate
	}
	if params.Retain {
		cfg.FailurePolicy = playback.RetainOnFailure
	}
}

func runPlay(ctx context.Context, params *PlayParams, cfg config.Config, log *slog.Logger) error {
	if !audioAvailable {
		return errAudioUnavailable
	}
	applyPlayFlags(params, &cfg)

	store := newStore(cfg, log)
	entries, err := resolveEntries(params, store)
	if err != nil {
		return err
	}

	dev, err := openSpeaker(cfg.SampleRate, cfg.BufferSize)
	if err != nil {
		return err
	}
	defer closeSpeaker(dev)

	s, err := startSession(ctx, params, cfg, log, dev, entries)
	if err != nil {
		return err
	}
	defer s.Close()

	if params.Playlist != "" {
		go watchPlaylist(ctx, store, params.Playlist, s, log)
	}

	startOutput(s.Streamer())
	log.Info("playing", "entries", len(entries), "sample_rate", cfg.SampleRate)

	<-ctx.Done()
	log.Info("stopping")

	return nil
}

// resolveEntries returns the entries named on the command line, or those of
// the saved playlist.
func resolveEntries(params *PlayParams, store *playlist.Store) ([]playlist.Entry, error) {
	if params.Playlist == "" {
		if len(params.Files) == 0 {
			return nil, errNothingToPlay
		}
		return lo.Map(params.Files, func(p string, _ int) playlist.Entry {
			return playlist.NewEntry(p)
		}), nil
	}

	entries, err := store.Load(params.Playlist)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%q: %w", params.Playlist, errUnknownPlaylist)
	}

	return entries, nil
}

// startSession runs a session on dev, loads the first entry and waits for
// it. A first clip that fails to load is an error; later failures are only
// logged.
func startSession(ctx context.Context, params *PlayParams, cfg config.Config, log *slog.Logger, dev playback.Device, entries []playlist.Entry) (*playback.Session, error) {
	s := playback.NewSession(newLoader(cfg, log), dev, playback.SessionOptions{
		Policy: cfg.FailurePolicy,
		Logger: log,
		Observer: playback.ObserverFuncs{
			OnAdvanced: func(i int, e playlist.Entry) {
				log.Info("next entry", "index", i, "name", e.Name)
			},
		},
	})

	cur := s.Cursor()
	if params.Backwards {
		cur.SetDirection(playback.Backward)
	}
	cur.SetGain(params.Gain)
	s.UsePlaylist(params.LoopPlaylist)

	s.Run(ctx)

	seq, err := s.LoadPlaylist(entries)
	if err == nil {
		var res playback.Result
		res, err = s.Wait(ctx, seq)
		if err == nil {
			err = res.Err
		}
	}
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("loading %s: %w", entries[0].Path, err)
	}

	return s, nil
}

// watchPlaylist swaps in the saved playlist whenever the store changes on
// disk. The clip that is playing keeps going.
func watchPlaylist(ctx context.Context, store *playlist.Store, name string, s *playback.Session, log *slog.Logger) {
	err := store.Watch(ctx, func(names []string) {
		if !lo.Contains(names, name) {
			return
		}
		entries, err := store.Load(name)
		if err != nil || len(entries) == 0 {
			log.Warn("reloading playlist", "name", name, "error", err)
			return
		}
		if _, err := s.LoadPlaylist(entries); err != nil {
			log.Warn("reloading playlist", "name", name, "error", err)
			return
		}
		log.Info("playlist reloaded", "name", name, "entries", len(entries))
	})
	if err != nil {
		log.Warn("watching playlist store", "path", store.Path(), "error", err)
	}
}

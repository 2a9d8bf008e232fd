// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/ik5/audloop"
	"github.com/ik5/audloop/internal/config"
	"github.com/ik5/audloop/playlist"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func PlaylistCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "playlist",
		Short: "Manage saved playlists",
		SubCmds: []*cobra.Command{
			playlistListCmd(),
			playlistShowCmd(),
			playlistSaveCmd(),
			playlistAddCmd(),
		},
	}.ToCobra()
}

// playlistCommand runs fn against the configured store, exiting on error.
func playlistCommand(name string, fn func(store *playlist.Store, w io.Writer, log *slog.Logger) error) {
	cfg := config.Load()
	log := newLogger(os.Stderr, cfg, false)

	if err := fn(newStore(cfg, log), os.Stdout, log); err != nil {
		fmt.Fprintf(os.Stderr, "playlist %s: %v\n", name, err)
		os.Exit(1)
	}
}

type PlaylistListParams struct{}

func playlistListCmd() *cobra.Command {
	return boa.CmdT[PlaylistListParams]{
		Use:         "list",
		Short:       "List saved playlist names",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlaylistListParams, cmd *cobra.Command, args []string) {
			playlistCommand("list", func(store *playlist.Store, w io.Writer, _ *slog.Logger) error {
				return runPlaylistList(store, w)
			})
		},
	}.ToCobra()
}

func runPlaylistList(store *playlist.Store, w io.Writer) error {
	names, err := store.ListNames()
	if err != nil {
		return err
	}
	for _, n := range lo.Uniq(names) {
		fmt.Fprintln(w, n)
	}
	return nil
}

type PlaylistShowParams struct {
	Name string `pos:"true" required:"true" help:"Playlist to show."`
}

func playlistShowCmd() *cobra.Command {
	return boa.CmdT[PlaylistShowParams]{
		Use:         "show <name>",
		Short:       "Print the entries of a saved playlist",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlaylistShowParams, cmd *cobra.Command, args []string) {
			playlistCommand("show", func(store *playlist.Store, w io.Writer, _ *slog.Logger) error {
				return runPlaylistShow(store, w, params.Name)
			})
		},
	}.ToCobra()
}

func runPlaylistShow(store *playlist.Store, w io.Writer, name string) error {
	entries, err := store.Load(name)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%q: %w", name, errUnknownPlaylist)
	}

	for i, e := range entries {
		fmt.Fprintf(w, "%3d  %-24s %s\n", i+1, e.Name, e.Path)
	}
	return nil
}

type PlaylistSaveParams struct {
	Name      string   `pos:"true" required:"true" help:"Playlist name."`
	Files     []string `pos:"true" required:"true" help:"Files in play order."`
	Overwrite bool     `short:"f" optional:"true" help:"Replace a playlist that already has this name."`
}

func playlistSaveCmd() *cobra.Command {
	return boa.CmdT[PlaylistSaveParams]{
		Use:         "save <name> <files...>",
		Short:       "Save files as a named playlist",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlaylistSaveParams, cmd *cobra.Command, args []string) {
			playlistCommand("save", func(store *playlist.Store, _ io.Writer, log *slog.Logger) error {
				return runPlaylistSave(store, params, log)
			})
		},
	}.ToCobra()
}

func runPlaylistSave(store *playlist.Store, params *PlaylistSaveParams, log *slog.Logger) error {
	warnUnsupported(params.Files, log)

	entries := lo.Map(params.Files, func(p string, _ int) playlist.Entry {
		return playlist.NewEntry(p)
	})
	return store.Save(params.Name, entries, params.Overwrite)
}

type PlaylistAddParams struct {
	Name  string   `pos:"true" required:"true" help:"Playlist to extend. Created when missing."`
	Files []string `pos:"true" required:"true" help:"Files to append."`
}

func playlistAddCmd() *cobra.Command {
	return boa.CmdT[PlaylistAddParams]{
		Use:         "add <name> <files...>",
		Short:       "Append files to a saved playlist",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlaylistAddParams, cmd *cobra.Command, args []string) {
			playlistCommand("add", func(store *playlist.Store, _ io.Writer, log *slog.Logger) error {
				return runPlaylistAdd(store, params, log)
			})
		},
	}.ToCobra()
}

func runPlaylistAdd(store *playlist.Store, params *PlaylistAddParams, log *slog.Logger) error {
	warnUnsupported(params.Files, log)

	entries, err := store.Load(params.Name)
	if err != nil {
		return err
	}
	for _, p := range params.Files {
		entries = append(entries, playlist.NewEntry(p))
	}

	return store.Save(params.Name, entries, true)
}

// warnUnsupported logs files no decoder will accept. They are still saved:
// the playlist may be used on a build with more formats.
func warnUnsupported(files []string, log *slog.Logger) {
	for _, f := range lo.Reject(files, func(p string, _ int) bool { return audloop.IsSupported(p) }) {
		log.Warn("unsupported file type", "path", f)
	}
}

// SPDX-License-Identifier: EPL-2.0

// Command alooper loops audio files, alone or through a saved playlist.
package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "alooper",
		Short:   "Loop audio files and playlists",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			PlayCmd(),
			ExportCmd(),
			PlaylistCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/ik5/audloop/formats/wav"
	"github.com/ik5/audloop/internal/config"
	"github.com/spf13/cobra"
)

type ExportParams struct {
	Input   string `pos:"true" required:"true" help:"Audio file to convert."`
	Output  string `pos:"true" required:"true" help:"WAV file to write."`
	Rate    int    `short:"r" optional:"true" help:"Output sample rate in Hz. 0 uses ALOOPER_SAMPLE_RATE." default:"0"`
	PCM16   bool   `optional:"true" help:"Write 16-bit integer samples instead of 32-bit float."`
	PCM24   bool   `optional:"true" help:"Write 24-bit integer samples instead of 32-bit float."`
	Verbose bool   `short:"v" optional:"true" help:"Log debug output."`
}

func ExportCmd() *cobra.Command {
	return boa.CmdT[ExportParams]{
		Use:         "export <input> <output>",
		Short:       "Decode a file, convert it to a sample rate and write it as WAV",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *ExportParams, cmd *cobra.Command, args []string) {
			cfg := config.Load()
			log := newLogger(os.Stderr, cfg, params.Verbose)

			if err := runExport(params, cfg, log); err != nil {
				fmt.Fprintf(os.Stderr, "export: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func exportEncoding(params *ExportParams) (wav.Encoding, error) {
	switch {
	case params.PCM16 && params.PCM24:
		return 0, errConflictingFlags
	case params.PCM16:
		return wav.PCM16, nil
	case params.PCM24:
		return wav.PCM24, nil
	default:
		return wav.Float32, nil
	}
}

func runExport(params *ExportParams, cfg config.Config, log *slog.Logger) error {
	enc, err := exportEncoding(params)
	if err != nil {
		return err
	}

	rate := cfg.SampleRate
	if params.Rate > 0 {
		rate = params.Rate
	}

	buf, err := newLoader(cfg, log).Load(params.Input, rate)
	if err != nil {
		return err
	}

	f, err := os.Create(params.Output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := wav.Export(f, buf, rate, enc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", params.Output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", params.Output, err)
	}

	log.Info("exported",
		"input", params.Input,
		"output", params.Output,
		"frames", buf.Frames(),
		"channels", buf.Channels(),
		"sample_rate", rate,
		"encoding", enc.String(),
	)

	return nil
}

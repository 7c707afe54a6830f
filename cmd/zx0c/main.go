// Command zx0c compresses a file with the zx0 package and reports a
// structured summary of the chosen parse.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"zx0"
)

func main() {
	var (
		output    = pflag.StringP("output", "o", "", "output file (default: input file + .zx0)")
		skip      = pflag.Int("skip", 0, "leading bytes already present in the decompression target")
		backwards = pflag.Bool("backwards", false, "compress as if input were reversed")
		quick     = pflag.Bool("quick", false, "use the faster, slightly larger quick-mode parse")
		classic   = pflag.Bool("classic", false, "emit the classic (v1) bitstream instead of v2")
		verbose   = pflag.BoolP("verbose", "v", false, "log progress as the optimizer runs")
	)
	pflag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input-file>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}
	inputPath := pflag.Arg(0)
	outputPath := *output
	if outputPath == "" {
		outputPath = inputPath + ".zx0"
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", inputPath).Msg("read input")
	}

	c := zx0.New().Skip(*skip).Backwards(*backwards).Quick(*quick).Classic(*classic)
	if *verbose {
		var lastPct int
		c = c.Progress(func(p float64) {
			pct := int(p * 100)
			if pct != lastPct {
				log.Debug().Int("percent", pct).Msg("optimizing")
				lastPct = pct
			}
		})
	}

	start := time.Now()
	result, err := c.Compress(input)
	if err != nil {
		log.Fatal().Err(err).Msg("compress")
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(outputPath, result.Output, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", outputPath).Msg("write output")
	}

	ratio := 100 * float64(len(result.Output)) / float64(result.OriginalSize)
	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("original_bytes", result.OriginalSize).
		Int("compressed_bytes", len(result.Output)).
		Float64("ratio_pct", ratio).
		Int("delta", result.Delta).
		Int("literal_runs", result.Stats.LiteralRuns).
		Int("copy_ops", result.Stats.CopyOps).
		Int("copy_prev_ops", result.Stats.CopyPrevOps).
		Dur("elapsed", elapsed).
		Msg("done")
}

// sizereport measures the section sizes of the binaries listed in a TOML
// config and reports them, either absolute or as a delta against a base
// binary, so a build pipeline can track code-size regressions.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/FangnanWei/pigweed/pkg/bloat"
)

type reportRow struct {
	Name   string            `json:"name"`
	Report *bloat.Report     `json:"report,omitempty"`
	Diff   *bloat.DiffReport `json:"diff,omitempty"`
}

func main() {
	configPath := flag.String("config", "sizereport.toml", "report config file")
	jsonOut := flag.Bool("json", false, "emit the report as JSON")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "sizereport").Logger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	rows := make([]reportRow, len(cfg.Binaries))
	var eg errgroup.Group
	eg.SetLimit(cfg.Jobs)
	for i, b := range cfg.Binaries {
		i, b := i, b
		eg.Go(func() error {
			target, err := bloat.Analyze(b.Target)
			if err != nil {
				return err
			}
			row := reportRow{Name: b.Name, Report: target}
			if b.Base != "" {
				base, err := bloat.Analyze(b.Base)
				if err != nil {
					return err
				}
				row.Diff = bloat.Diff(base, target)
			}
			rows[i] = row
			logger.Debug().Str("binary", b.Name).Uint64("total", target.Total).Msg("analyzed")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("size report failed")
	}

	if *jsonOut {
		out, err := sonic.MarshalIndent(rows, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("encode report")
		}
		fmt.Println(string(out))
		return
	}
	printTable(rows)
}

func printTable(rows []reportRow) {
	fmt.Printf("%-24s %12s %12s %12s %12s\n", "binary", "text", "data", "bss", "total")
	for _, row := range rows {
		if row.Diff != nil {
			fmt.Printf("%-24s %+12d %+12d %+12d %+12d\n",
				row.Name, row.Diff.Text, row.Diff.Data, row.Diff.BSS, row.Diff.Total)
			for _, s := range row.Diff.Sections {
				fmt.Printf("  %-22s %12d -> %-12d %+12d\n", s.Name, s.Base, s.Target, s.Delta)
			}
			continue
		}
		r := row.Report
		fmt.Printf("%-24s %12d %12d %12d %12d\n", row.Name, r.Text, r.Data, r.BSS, r.Total)
	}
}

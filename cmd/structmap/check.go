package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/mapping"
)

type checkResult struct {
	file  string
	diags *diagnostic.Diagnostics
	err   error
}

func (r checkResult) failed() bool {
	return r.err != nil || r.diags.HasErrors()
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate declaration files against the loaded packages",
		Long: `Check loads the packages once and validates every declaration file
against them: named types must exist and every declared path must be
readable on the source and writable on the target.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := loadGraph(flags)
			if err != nil {
				return err
			}

			results := make([]checkResult, len(args))

			g, _ := errgroup.WithContext(context.Background())
			g.SetLimit(max(1, viper.GetInt(parallelKey)))

			for i, file := range args {
				g.Go(func() error {
					res := checkResult{file: file}

					f, err := mapping.LoadFile(file)
					if err != nil {
						res.err = err
					} else {
						res.diags = mapping.Validate(f, graph)
					}

					results[i] = res

					return nil
				})
			}

			_ = g.Wait()

			failed := 0

			for _, res := range results {
				if report(cmd, res) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d declaration files failed", failed, len(results))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&parallel, parallelFlagName, defaultParallel, "files checked at once")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelKey)

	return cmd
}

// report prints one file's outcome and reports whether it failed.
func report(cmd *cobra.Command, res checkResult) bool {
	if res.err != nil {
		slog.Error("declaration file unreadable", slog.String("file", res.file), slog.Any("error", res.err))
		cmd.Printf("%s: %v\n", res.file, res.err)

		return true
	}

	for _, d := range res.diags.Errors {
		cmd.Printf("%s: error: %s\n", res.file, d)
	}

	for _, d := range res.diags.Warnings {
		cmd.Printf("%s: warning: %s\n", res.file, d)
	}

	slog.Info("declaration file checked",
		slog.String("file", res.file),
		slog.Int("errors", len(res.diags.Errors)),
		slog.Int("warnings", len(res.diags.Warnings)),
	)

	if !res.failed() {
		cmd.Printf("%s: ok\n", res.file)
	}

	return res.failed()
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"struct-mapper/internal/analyze"
)

const rootLongDescription = `structmap checks mapping declaration files against the Go types they
name and lists the property paths those types expose.

Packages are loaded with the usual Go patterns:
  - ./store ./warehouse     two local packages
  - example.com/app/...     every package below a module path`

type rootFlags struct {
	packages []string
	logFile  string
	verbose  bool
}

// newRootCmd builds the command tree. Each call gets its own flag storage.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "structmap",
		Short:         "Object mapping declaration tooling",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(flags.logFile, flags.verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringSliceVarP(&flags.packages, packagesFlagName, "p", nil, "packages holding the mapped types (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(packagesFlagName), packagesKey)

	cmd.PersistentFlags().StringVar(&flags.logFile, logFileFlagName, "", "log file path (default "+defaultLogFilename+")")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, verboseFlagName, "v", false, "log at debug level")

	cmd.AddCommand(
		newCheckCmd(flags),
		newPathsCmd(flags),
		newFormatCmd(),
		newVersionCmd(),
	)

	return cmd
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config and env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// loadGraph loads the packages named by the flags or the config file.
func loadGraph(flags *rootFlags) (*analyze.TypeGraph, error) {
	patterns := flags.packages
	if len(patterns) == 0 {
		patterns = viper.GetStringSlice(packagesKey)
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("no packages given, use --%s or %q in %s", packagesFlagName, packagesKey, configFileName)
	}

	slog.Debug("loading packages", slog.Any("patterns", patterns))

	graph, err := analyze.NewAnalyzer().LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	slog.Debug("packages loaded", slog.Int("types", len(graph.Types)))

	return graph, nil
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

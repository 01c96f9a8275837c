package main

import (
	"os"

	"github.com/spf13/cobra"

	"struct-mapper/internal/mapping"
)

func newFormatCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Rewrite a declaration file in normalized form",
		Long: `Fmt expands 121 shorthand into field entries ordered by source path
and prints the result. With --write the file is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			mapping.Normalize(f)

			data, err := mapping.Marshal(f)
			if err != nil {
				return err
			}

			if write {
				info, err := os.Stat(args[0])
				if err != nil {
					return err
				}

				return os.WriteFile(args[0], data, info.Mode().Perm())
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}

package main

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"struct-mapper/internal/analyze"
)

func newPathsCmd(flags *rootFlags) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "paths TYPE...",
		Short: "List the property paths of struct types",
		Long: `Paths prints every field path reachable from the named struct types,
such as Order.Customer.Address.City, with the type found there.
Types are named like in declaration files: store.Order or a full import path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := loadGraph(flags)
			if err != nil {
				return err
			}

			stringer := analyze.NewTypeStringer()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, name := range args {
				root := graph.Resolve(name)
				if root == nil {
					return fmt.Errorf("type %q not found", name)
				}

				if root.Kind != analyze.TypeKindStruct {
					return fmt.Errorf("type %q is a %s, not a struct", name, root.Kind)
				}

				paths := stringer.BuildFieldPaths(root, viper.GetInt(depthKey))
				for _, p := range slices.Sorted(maps.Keys(paths)) {
					fmt.Fprintf(w, "%s\t%s\n", p, stringer.TypeString(paths[p].Type))
				}
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&depth, depthFlagName, defaultDepth, "maximum nesting depth")
	bindFlagToConfig(cmd.Flags().Lookup(depthFlagName), depthKey)

	return cmd
}

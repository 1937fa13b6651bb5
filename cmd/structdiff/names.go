package main

import (
	"fmt"

	"github.com/qri-io/structdiff"
	"github.com/spf13/cobra"
)

func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Work with display name files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a YAML or TOML names file loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := structdiff.LoadNames(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d type names, %d field names\n", args[0], len(names.Types), len(names.Fields))
			return nil
		},
	})
	return cmd
}

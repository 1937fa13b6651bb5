package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the structdiff version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colorTTY, err := useColor(cmd)
			if err != nil {
				return err
			}
			name := color.New(color.FgYellow, color.Bold)
			if colorTTY {
				name.EnableColor()
			} else {
				name.DisableColor()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", name.Sprint("structdiff"), version, runtime.Version())
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hoppxi/hkcheck/internal/hotkey"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available hotkey checks",
	Args:  usageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, t := range hotkey.Tests() {
			fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Description)
		}
		tw.Flush()
	},
}

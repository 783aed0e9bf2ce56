package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/chat"
)

func newStartersCmd() *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "starters",
		Short: "Print starter questions for chat UIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			starters := chat.PickStarters(nil)
			if all {
				starters = chat.Starters()
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(starters)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tLABEL\tMESSAGE")
			for _, s := range starters {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Category, s.Label, s.Message)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every starter instead of one per category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

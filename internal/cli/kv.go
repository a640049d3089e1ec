package cli

import "github.com/spf13/cobra"

var kvCmd = &cobra.Command{
	Use:   "kv",
	Short: "Inspect and maintain the raw key-value store",
	Long:  "Low-level access to the versioned key-value store that backs every record. Values are JSON documents keyed by name.",
}

func init() {
	RootCmd.AddCommand(kvCmd)
}

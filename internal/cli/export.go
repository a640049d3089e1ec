package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current value of every key",
		Long:  "Export the latest version of every key as JSON (or YAML with -f yaml). The output can be fed back to import.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	kvCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	w := cmd.OutOrStdout()
	if cfg.Format == config.FormatYAML {
		printYAML(w, entries)
		return
	}
	printJSON(w, entries)
}

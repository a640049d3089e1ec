package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	kvCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.DBPath)
	if err != nil {
		exitErr("stats", err)
	}

	render(cmd, stats, func(w io.Writer) {
		fmt.Fprintf(w, "%s  %s\n", title(stats.DBPath), dim(fmt.Sprintf("%d bytes", stats.DBSizeBytes)))
		fmt.Fprintf(w, "%d keys, %d versions\n\n", stats.TotalKeys, stats.TotalVersions)
		for _, k := range stats.Keys {
			fmt.Fprintf(w, "  %-28s %2d versions %8d bytes\n", k.Key, k.Versions, k.ValueBytes)
		}
	})
}

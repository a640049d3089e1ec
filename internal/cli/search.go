package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search stored values by keyword",
		Long:  "Search the current value and name of every key for matching text.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	kvCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), query, limit)
	if err != nil {
		exitErr("search", err)
	}

	if results == nil {
		results = []store.Entry{}
	}

	render(cmd, results, nil)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the current value of a key",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	cmd.Flags().Bool("history", false, "Return all retained versions (newest first)")

	historyCmd := &cobra.Command{
		Use:   "history <key>",
		Short: "List retained versions of a key, newest first",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}

	kvCmd.AddCommand(cmd, historyCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	history, _ := cmd.Flags().GetBool("history")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if history {
		printHistory(cmd, s, args[0])
		return
	}

	value, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
}

func runHistory(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printHistory(cmd, s, args[0])
}

func printHistory(cmd *cobra.Command, s *store.SQLiteStore, key string) {
	entries, err := s.History(cmd.Context(), key)
	if err != nil {
		exitErr("history", err)
	}
	render(cmd, entries, nil)
}

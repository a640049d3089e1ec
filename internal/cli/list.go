package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/state"
)

func init() {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		Run:   runList,
	}

	cmd.Flags().Bool("known", false, "List every key the journal uses, stored or not")

	kvCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	known, _ := cmd.Flags().GetBool("known")
	if known {
		render(cmd, state.Keys, func(w io.Writer) {
			for _, k := range state.Keys {
				fmt.Fprintln(w, k)
			}
		})
		return
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	keys, err := s.Keys(cmd.Context())
	if err != nil {
		exitErr("keys", err)
	}
	if keys == nil {
		keys = []string{}
	}
	render(cmd, keys, func(w io.Writer) {
		for _, k := range keys {
			fmt.Fprintln(w, k)
		}
	})
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Write a raw value",
		Long:  "Write a value for key. The value can be a positional arg or piped via stdin and must be valid JSON unless --raw is set.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runPut,
	}

	cmd.Flags().Bool("raw", false, "Skip JSON validation")

	kvCmd.AddCommand(cmd)
}

func runPut(cmd *cobra.Command, args []string) {
	raw, _ := cmd.Flags().GetBool("raw")
	key := args[0]

	value := readContent(cmd, args[1:])
	if value == "" {
		exitErr("set", fmt.Errorf("value is required (positional arg or stdin)"))
	}
	if !raw && !json.Valid([]byte(value)) {
		exitErr("set", fmt.Errorf("value for %q is not valid JSON (use --raw to store it anyway)", key))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Set(cmd.Context(), key, value); err != nil {
		exitErr("set", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"key":%q}`+"\n", key)
}

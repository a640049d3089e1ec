package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/shadow-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import entries produced by export",
		Long:  "Import entries from a file or stdin. Accepts the JSON or YAML produced by export; every entry becomes a new version of its key.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	kvCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}

	entries, err := parseEntries(data)
	if err != nil {
		exitErr("parse input", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), entries)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}

// parseEntries accepts JSON, falling back to YAML. YAML is decoded
// generically and re-read as JSON so both share the JSON field names.
func parseEntries(data []byte) ([]store.Entry, error) {
	var entries []store.Entry
	jsonErr := json.Unmarshal(data, &entries)
	if jsonErr == nil {
		return entries, nil
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("neither JSON (%v) nor YAML (%w)", jsonErr, err)
	}
	b, err := json.Marshal(generic)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

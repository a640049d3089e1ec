// Package cli implements the shadow-journal CLI commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rcliao/shadow-journal/internal/config"
	"github.com/rcliao/shadow-journal/internal/gateway"
	"github.com/rcliao/shadow-journal/internal/state"
	"github.com/rcliao/shadow-journal/internal/store"
)

// Version is stamped at build time.
var Version = "dev"

var (
	cfgFile string
	vcfg    = viper.New()
	cfg     config.Config
	logger  = zap.NewNop()

	closersMu sync.Mutex
	closers   []func()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:     "shadow-journal",
	Short:   "Shadow work journal and archetype assessment",
	Long:    "A local journal for shadow work: archetype assessment, journaling, practices, and optional AI analysis. SQLite-backed, single binary.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(vcfg, cfgFile)
		if err != nil {
			return err
		}
		cfg = c

		lvl, _ := cfg.Level()
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(lvl)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default: ~/.shadow-journal/shadow-journal.yaml or ./shadow-journal.yaml)")
	flags.StringP("db", "d", "", "Database path (default: $SHADOW_JOURNAL_DB or ~/.shadow-journal/journal.db)")
	flags.StringP("format", "f", config.FormatJSON, "Output format: json, text or yaml")
	flags.String("gateway", "", "AI gateway base URL (default: $SHADOW_JOURNAL_GATEWAY_BASE_URL)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	_ = vcfg.BindPFlag("db", flags.Lookup("db"))
	_ = vcfg.BindPFlag("format", flags.Lookup("format"))
	_ = vcfg.BindPFlag("gateway.base_url", flags.Lookup("gateway"))
	_ = vcfg.BindPFlag("log_level", flags.Lookup("log-level"))
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath)
}

// openState opens the store and hydrates application state. The returned
// func flushes the state and closes the store; exitErr also runs it, so
// queued writes survive an error exit.
func openState(cmd *cobra.Command) (*state.State, func()) {
	kv, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	policy, _ := cfg.WritePolicy()
	st, err := state.Open(cmd.Context(), kv, state.Options{
		Policy:        policy,
		FlushInterval: cfg.Write.Interval,
		Logger:        logger,
	})
	if err != nil {
		kv.Close()
		exitErr("open state", err)
	}
	var once sync.Once
	done := func() {
		once.Do(func() {
			if err := st.Close(); err != nil {
				logger.Error("flush state", zap.Error(err))
			}
			kv.Close()
		})
	}
	onExit(done)
	return st, done
}

// onExit registers fn to run before exitErr terminates the process.
func onExit(fn func()) {
	closersMu.Lock()
	defer closersMu.Unlock()
	closers = append(closers, fn)
}

// runClosers runs registered cleanups, newest first, and forgets them.
func runClosers() {
	closersMu.Lock()
	fns := closers
	closers = nil
	closersMu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

func newGateway() *gateway.Client {
	return gateway.New(gateway.Config{
		BaseURL: cfg.Gateway.BaseURL,
		APIKey:  cfg.Gateway.APIKey,
		Timeout: cfg.Gateway.Timeout,
		Strict:  cfg.Gateway.Strict,
		Logger:  logger,
	})
}

// readContent joins args, or reads piped stdin when there are none.
func readContent(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " "))
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return ""
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		exitErr("read stdin", err)
	}
	return strings.TrimSpace(string(b))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	runClosers()
	os.Exit(1)
}

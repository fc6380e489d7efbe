// Package cli implements the fieldmap command line: catalog listings, local
// previews of a mapping configuration and batch transformation of CSV
// extracts.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JonMunkholm/fieldmap/internal/logging"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	log     *slog.Logger
}

// NewRootCmd builds the fieldmap command tree. Each call gets its own viper
// instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "fieldmap",
		Short: "Map and normalize FIS extract fields for Financial Services Cloud",
		Long: `fieldmap previews and applies the field mappings and data fixes that
turn FIS core banking extracts into Salesforce Financial Services Cloud
records.

Settings come from flags, then FIELDMAP_* environment variables, then
fieldmap.yaml in the executable directory or the working directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.log = logging.New(cmd.ErrOrStderr(), a.v.GetString("log-level"), a.v.GetString("log-format"))
			if used := a.v.ConfigFileUsed(); used != "" {
				a.log.Debug("using config file", "path", used)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./fieldmap.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	_ = a.v.BindPFlag("log-level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log-format", pf.Lookup("log-format"))

	root.AddCommand(
		a.fieldsCmd(),
		a.fixesCmd(),
		a.previewCmd(),
		a.transformCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads the config file and environment. A missing file is only
// an error when --config names it.
func (a *app) initConfig() error {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
		v.AddConfigPath(".")
		v.SetConfigName("fieldmap")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FIELDMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// bindFlags binds flags of the running command to viper keys. Binding at run
// time lets several subcommands share a key.
func (a *app) bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func closeQuietly(c io.Closer, log *slog.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Warn("close failed", "what", what, "error", err)
	}
}

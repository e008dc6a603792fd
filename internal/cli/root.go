// Package cli implements the pypi command line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/git-pkgs/pypi/client"
	"github.com/git-pkgs/pypi/internal/config"
	"github.com/git-pkgs/pypi/internal/core"
	"github.com/git-pkgs/pypi/internal/logging"
	"github.com/git-pkgs/pypi/internal/pypi"
	"github.com/git-pkgs/pypi/internal/version"
)

// app carries what every command needs once the root's pre-run has loaded
// configuration.
type app struct {
	logger  *zap.Logger
	index   *pypi.Index
	asJSON  bool
	baseURL string
	name    string
}

// NewRootCmd returns the pypi root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "pypi",
		Short:         "Query package metadata from a Python package index",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print records as JSON")
	cmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Index root URL (overrides PYPI_BASE_URL)")
	cmd.PersistentFlags().StringVar(&a.name, "index", "", "Registered index name, e.g. testpypi (overrides PYPI_INDEX)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newFeedCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newFilesCmd(a))
	cmd.AddCommand(newInspectCmd(a))

	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cmd.ErrOrStderr(), logging.Level(cfg.Log.Level), logging.Format(cfg.Log.Format))
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("version", version.Version))

	baseURL := cfg.Index.BaseURL
	name := cfg.Index.Name
	if a.name != "" {
		name = a.name
	}
	if name != "" {
		if baseURL, err = core.IndexURL(name); err != nil {
			return err
		}
	}
	if a.baseURL != "" {
		baseURL = a.baseURL
	}

	c := client.NewClient(
		client.WithTimeout(cfg.Index.Timeout),
		client.WithUserAgent(cfg.Index.UserAgent),
	)
	a.index = pypi.New(baseURL, c, pypi.WithLogger(a.logger.Named("index")))
	a.logger.Debug("configured index", zap.Object("index", cfg.Index), zap.String("resolved", a.index.BaseURL()))
	return nil
}

// print writes v as indented JSON when --json is set, otherwise it calls text.
func (a *app) print(w io.Writer, v any, text func(io.Writer) error) error {
	if !a.asJSON {
		return text(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.Commit)
			return nil
		},
	}
}

// stringOr dereferences s, or returns def when s is nil.
func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

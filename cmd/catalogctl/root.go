package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/config"
	"github.com/JonMunkholm/gamestore/internal/core"
	"github.com/JonMunkholm/gamestore/internal/logging"
	"github.com/JonMunkholm/gamestore/internal/source"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	output   string
	packsURL string
	unitsURL string
	logLevel string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect the pack and unit catalogs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	flags.StringVar(&opts.packsURL, "packs-url", "", "pack catalog location (default $SHEETS_CSV_URL)")
	flags.StringVar(&opts.unitsURL, "units-url", "", "unit catalog location (default $SHEETS_UNITARIOS_CSV_URL)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newPacksCmd(opts),
		newUnitsCmd(opts),
		newHomeCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

// load reads .env and the environment configuration. Flags win over the
// environment.
func (o *rootOptions) load(cmd *cobra.Command) error {
	if o.output != "json" && o.output != "yaml" {
		return fmt.Errorf("unknown output format %q", o.output)
	}

	_ = godotenv.Load()
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), o.logLevel, "text"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.packsURL != "" {
		cfg.Catalog.PacksURL = o.packsURL
	}
	if o.unitsURL != "" {
		cfg.Catalog.UnitsURL = o.unitsURL
	}
	o.cfg = cfg
	return nil
}

// service builds an uncached catalog service for one command run.
func (o *rootOptions) service(cmd *cobra.Command) (*core.Service, error) {
	c := o.cfg.Catalog
	src, err := source.NewDefaultMux(cmd.Context(), c.FetchTimeout, c.MaxBytes, c.PacksURL, c.UnitsURL)
	if err != nil {
		return nil, err
	}
	fetcher := catalog.NewFetcher(src, c.PacksURL, c.UnitsURL)
	return core.NewService(fetcher, core.Options{}), nil
}

func (o *rootOptions) write(w io.Writer, v any) error {
	return writeOutput(w, o.output, v)
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// userError renders err the way the API would, keeping the technical error
// for --log-level debug.
func userError(err error) error {
	if core.IsUserFacing(err) {
		slog.Debug("command failed", "error", err)
		return fmt.Errorf("%s", core.FormatUserError(err))
	}
	return err
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/sheet"
	"github.com/JonMunkholm/gamestore/internal/source"
)

// boundFlags registers --min and --max. Empty means unbounded; anything
// else must be a whole number.
type boundFlags struct {
	min, max string
}

func (b *boundFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.min, "min", "", "minimum price in CLP")
	cmd.Flags().StringVar(&b.max, "max", "", "maximum price in CLP")
}

func (b *boundFlags) parse() (lo, hi *int, err error) {
	lo = catalog.ParseBound(b.min)
	if b.min != "" && lo == nil {
		return nil, nil, fmt.Errorf("--min: %q is not a whole number", b.min)
	}
	hi = catalog.ParseBound(b.max)
	if b.max != "" && hi == nil {
		return nil, nil, fmt.Errorf("--max: %q is not a whole number", b.max)
	}
	return lo, hi, nil
}

func newPacksCmd(opts *rootOptions) *cobra.Command {
	var q string
	var bounds boundFlags

	cmd := &cobra.Command{
		Use:   "packs",
		Short: "List packs, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := bounds.parse()
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			packs, err := svc.SearchPacks(cmd.Context(), catalog.PackQuery{Q: q, Min: lo, Max: hi})
			if err != nil {
				return userError(err)
			}
			return opts.write(cmd.OutOrStdout(), packs)
		},
	}
	cmd.Flags().StringVar(&q, "q", "", "comma-separated search terms")
	bounds.register(cmd)
	return cmd
}

func newUnitsCmd(opts *rootOptions) *cobra.Command {
	var q string
	var onSale bool
	var bounds boundFlags

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List single games, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := bounds.parse()
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			units, err := svc.SearchUnits(cmd.Context(), catalog.UnitQuery{Q: q, Min: lo, Max: hi, OnSaleOnly: onSale})
			if err != nil {
				return userError(err)
			}
			return opts.write(cmd.OutOrStdout(), units)
		},
	}
	cmd.Flags().StringVar(&q, "q", "", "search text")
	cmd.Flags().BoolVar(&onSale, "ofertas", false, "only games on sale")
	bounds.register(cmd)
	return cmd
}

func newHomeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the landing-page summary of both catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			home, err := svc.Home(cmd.Context())
			if err != nil {
				return userError(err)
			}
			return opts.write(cmd.OutOrStdout(), home)
		},
	}
}

// validateReport summarizes how a local sheet export would be ingested.
type validateReport struct {
	Kind           catalog.Kind `json:"kind" yaml:"kind"`
	File           string       `json:"file" yaml:"file"`
	Rows           int          `json:"rows" yaml:"rows"`
	Accepted       int          `json:"accepted" yaml:"accepted"`
	Dropped        int          `json:"dropped" yaml:"dropped"`
	MissingColumns []string     `json:"missing_columns,omitempty" yaml:"missing_columns,omitempty"`
}

// requiredColumns are the headers without which every row is dropped.
var requiredColumns = map[catalog.Kind][]string{
	catalog.KindPacks: {catalog.ColPackID},
	catalog.KindUnits: {catalog.ColUnitName},
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a local CSV export before publishing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := validateFile(cmd, catalog.Kind(kind), args[0])
			if err != nil {
				return err
			}
			if err := opts.write(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if len(report.MissingColumns) > 0 {
				return fmt.Errorf("%s: missing required columns %v", args[0], report.MissingColumns)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(catalog.KindPacks), "catalog kind: packs or units")
	return cmd
}

func validateFile(cmd *cobra.Command, kind catalog.Kind, path string) (validateReport, error) {
	required, ok := requiredColumns[kind]
	if !ok {
		return validateReport{}, fmt.Errorf("unknown kind %q", kind)
	}

	body, err := source.FileSource{}.Fetch(cmd.Context(), path)
	if err != nil {
		return validateReport{}, err
	}
	defer body.Close()

	rows, err := sheet.ParseReader(body)
	if err != nil {
		return validateReport{}, fmt.Errorf("read %s: %w", path, err)
	}

	report := validateReport{Kind: kind, File: path}
	if len(rows) == 0 {
		report.MissingColumns = required
		return report, nil
	}
	report.Rows = len(rows) - 1

	switch kind {
	case catalog.KindPacks:
		report.MissingColumns = sheet.Resolve(rows[0], catalog.PackColumns...).Missing(required...)
		report.Accepted = len(catalog.ParsePacks(rows))
	case catalog.KindUnits:
		report.MissingColumns = sheet.Resolve(rows[0], catalog.UnitColumns...).Missing(required...)
		report.Accepted = len(catalog.ParseUnits(rows))
	}
	report.Dropped = report.Rows - report.Accepted
	return report, nil
}

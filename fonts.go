package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/picker"
	"github.com/spf13/cobra"
)

type fontsOptions struct {
	category   string
	limit      int
	jsonOutput bool
}

func newFontsCmd(root *rootFlags) *cobra.Command {
	opts := &fontsOptions{}

	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "Query the font catalog",
	}
	cmd.PersistentFlags().StringVarP(&opts.category, "category", "c", string(font.SansSerif), "Font category")
	cmd.PersistentFlags().IntVarP(&opts.limit, "limit", "n", 50, "Maximum number of families, 0 for all")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List families of a category in popularity order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFontsList(cmd, root, opts, "")
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search families by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFontsList(cmd, root, opts, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "weights <family>",
		Short: "Show the weights and links of a family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFontsWeights(cmd, root, opts, args[0])
		},
	})
	cmd.AddCommand(newFontsCacheCmd())

	return cmd
}

type fontRow struct {
	Family   string        `json:"family"`
	Category font.Category `json:"category"`
	Weights  []int         `json:"weights"`
}

func runFontsList(cmd *cobra.Command, root *rootFlags, opts *fontsOptions, term string) error {
	cat, ok := font.ParseCategory(opts.category)
	if !ok {
		return fmt.Errorf("unknown category %q (want one of %s)", opts.category, categoryNames())
	}

	catalog, err := root.loader().Load(cmd.Context())
	if err != nil {
		return err
	}
	records := picker.Filter(term, catalog.Fonts(cat))
	if opts.limit > 0 && len(records) > opts.limit {
		records = records[:opts.limit]
	}

	rows := make([]fontRow, len(records))
	for i, r := range records {
		rows[i] = fontRow{Family: r.Family, Category: r.Category, Weights: font.ParseWeights(r.Variants)}
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No fonts found.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tCATEGORY\tWEIGHTS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Family, r.Category, joinInts(r.Weights))
	}
	return w.Flush()
}

func runFontsWeights(cmd *cobra.Command, root *rootFlags, opts *fontsOptions, family string) error {
	catalog, err := root.loader().Load(cmd.Context())
	if err != nil {
		return err
	}
	weights := catalog.Weights(family)
	if weights == nil {
		return fmt.Errorf("font not found: %s", family)
	}

	out := map[string]any{
		"family":     family,
		"category":   catalog.CategoryOf(family),
		"weights":    weights,
		"stylesheet": font.StylesheetURL(family, weights),
		"specimen":   font.SpecimenURL(family),
	}
	if opts.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", family, catalog.CategoryOf(family))
	fmt.Fprintf(cmd.OutOrStdout(), "  weights:    %s\n", joinInts(weights))
	fmt.Fprintf(cmd.OutOrStdout(), "  stylesheet: %s\n", font.StylesheetURL(family, weights))
	fmt.Fprintf(cmd.OutOrStdout(), "  specimen:   %s\n", font.SpecimenURL(family))
	return nil
}

func newFontsCacheCmd() *cobra.Command {
	var (
		dir     string
		weights []int
	)
	cmd := &cobra.Command{
		Use:   "cache <family>",
		Short: "Download font files into the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := font.NewManagerWithDir(dir)
			for _, w := range weights {
				if m.Available(args[0], w) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %d already cached\n", args[0], w)
					continue
				}
				if err := m.Cache(cmd.Context(), args[0], w); err != nil {
					return fmt.Errorf("cache %s %d: %w", args[0], w, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d cached in %s\n", args[0], w, m.Dir())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./.data/fonts", "Font cache directory")
	cmd.Flags().IntSliceVar(&weights, "weights", font.FallbackWeights, "Weights to download")
	return cmd
}

func categoryNames() string {
	names := make([]string, len(font.Categories))
	for i, c := range font.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

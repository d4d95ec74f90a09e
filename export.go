package main

import (
	"fmt"
	"os"

	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/export"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/kv"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	heading    string
	body       string
	preset     string
	background string
	text       string
	presets    string
	components string
	fontsDir   string
	out        string
}

func newExportCmd(root *rootFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <component>",
		Short: "Render a themed component to standalone HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.heading, "heading", "", "Heading font family")
	cmd.Flags().StringVar(&opts.body, "body", "", "Body font family")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Color preset name")
	cmd.Flags().StringVar(&opts.background, "background", "", "Custom background color (needs --text)")
	cmd.Flags().StringVar(&opts.text, "text", "", "Custom text color (needs --background)")
	cmd.Flags().StringVar(&opts.presets, "presets", "./etc/presets.yaml", "Color preset file")
	cmd.Flags().StringVar(&opts.components, "components", "./components", "Component override directory")
	cmd.Flags().StringVar(&opts.fontsDir, "fonts-dir", "./.data/fonts", "Font cache directory")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagsRequiredTogether("background", "text")
	cmd.MarkFlagsMutuallyExclusive("preset", "background")

	return cmd
}

func runExport(cmd *cobra.Command, root *rootFlags, opts *exportOptions, component string) error {
	ctx := cmd.Context()

	loader := root.loader()
	if _, err := loader.Load(ctx); err != nil && (opts.heading != "" || opts.body != "") {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, keeping default weights\n", err)
	}

	presets, err := colors.LoadPresets(opts.presets)
	if err != nil {
		return err
	}

	store := kv.NewMemory()
	fonts := typography.NewState(store, typography.WeightsFunc(loader.Weights),
		typography.MustNewRegistry(typography.DefaultElements()...))
	th := theme.New(fonts, colors.NewState(store, colors.StaticLibrary(presets), nil))
	if err := th.Restore(ctx); err != nil {
		return err
	}

	if opts.heading != "" {
		if err := fonts.Select(ctx, typography.Heading, opts.heading); err != nil {
			return err
		}
	}
	if opts.body != "" {
		if err := fonts.Select(ctx, typography.Body, opts.body); err != nil {
			return err
		}
	}
	switch {
	case opts.preset != "":
		if err := th.Colors.SelectPreset(ctx, opts.preset); err != nil {
			return err
		}
	case opts.background != "":
		if err := th.Colors.SetMode(ctx, colors.Custom); err != nil {
			return err
		}
		if _, err := th.Colors.SetCustom(ctx, opts.background, opts.text); err != nil {
			return err
		}
	}

	exporter, err := export.New(opts.components, export.NewRenderer(export.WithCache(false)),
		export.WithFontSource(font.NewManagerWithDir(opts.fontsDir)),
		export.WithCategories(func(family string) font.Category {
			if cat, ok := loader.Loaded(); ok {
				return cat.CategoryOf(family)
			}
			return font.SansSerif
		}),
	)
	if err != nil {
		return err
	}

	html, err := exporter.Export(ctx, component, export.Input{
		Snapshot: th.Snapshot(),
		Styles: map[typography.Role][]typography.ElementStyle{
			typography.Heading: fonts.Styles(typography.Heading),
			typography.Body:    fonts.Styles(typography.Body),
		},
	})
	if err != nil {
		return err
	}

	for _, issue := range export.CheckCompatibility(html) {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", issue)
	}

	if opts.out == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(opts.out, []byte(html), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %s to %s (%d bytes)\n", component, opts.out, len(html))
	return nil
}

// plat-theme CLI - font catalog and component export tool
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	directoryURL string
	apiKey       string
	timeout      time.Duration
}

func (f *rootFlags) loader() *font.Loader {
	return font.NewLoader(font.NewHTTPFetcher(f.directoryURL, f.apiKey, f.timeout))
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "plat-theme",
		Short:         "Browse the font catalog and export themed components",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.directoryURL, "directory-url", os.Getenv("GOOGLE_FONTS_DIRECTORY_URL"), "Font directory endpoint")
	cmd.PersistentFlags().StringVar(&flags.apiKey, "api-key", os.Getenv("GOOGLE_FONTS_API_KEY"), "Google Fonts API key")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 10*time.Second, "Directory request timeout")

	cmd.AddCommand(newFontsCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "plat-theme v0.1.0")
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

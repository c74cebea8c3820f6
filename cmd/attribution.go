package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/attribution"
)

func newAttributionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attribution",
		Short: "Render and check the attribution required by the TMDB terms of use",
	}

	var opts attribution.HTMLOptions
	htmlCmd := &cobra.Command{
		Use:   "html",
		Short: "Print the HTML attribution block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), attribution.HTML(opts))
			return err
		},
	}
	htmlCmd.Flags().StringVar(&opts.Class, "class", "", "CSS class of the wrapper element")
	htmlCmd.Flags().StringVar(&opts.LogoHeight, "logo-height", "", "logo height attribute")
	htmlCmd.Flags().StringVar(&opts.LogoAlt, "logo-alt", "", "logo alt text")
	htmlCmd.Flags().StringVar(&opts.LogoURL, "logo-url", "", "logo image URL")
	htmlCmd.Flags().BoolVar(&opts.OmitLink, "no-link", false, "do not link the logo to the terms of use")

	textCmd := &cobra.Command{
		Use:   "text",
		Short: "Print the plain text attribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), attribution.PlainText())
			return err
		},
	}

	jsonLDCmd := &cobra.Command{
		Use:   "jsonld",
		Short: "Print schema.org JSON-LD naming TMDB as the data provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := attribution.JSONLD()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cssCmd := &cobra.Command{
		Use:   "css",
		Short: "Print a stylesheet for the HTML attribution block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), attribution.Styles())
			return err
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check HTML for the required attribution (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			result := attribution.ValidateHTML(string(content))
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("attribution is missing")
			}
			return nil
		},
	}

	var (
		usage      attribution.Usage
		fromConfig bool
	)
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check usage against the TMDB terms of use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromConfig {
				cfg, err := a.loadSettings()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				u := cfg.Compliance
				// Explicit flags win over the config file.
				if cmd.Flags().Changed("requests-per-day") {
					u.RequestsPerDay = usage.RequestsPerDay
				}
				if cmd.Flags().Changed("has-attribution") {
					u.HasAttribution = usage.HasAttribution
				}
				if cmd.Flags().Changed("has-logo") {
					u.HasLogo = usage.HasLogo
				}
				usage = u
			}

			result := attribution.CheckCompliance(usage)
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Compliant {
				return fmt.Errorf("usage is not compliant")
			}
			return nil
		},
	}
	checkCmd.Flags().IntVar(&usage.RequestsPerDay, "requests-per-day", 0, "average API requests per day")
	checkCmd.Flags().BoolVar(&usage.HasAttribution, "has-attribution", false, "the attribution text is displayed")
	checkCmd.Flags().BoolVar(&usage.HasLogo, "has-logo", false, "the TMDB logo is displayed")
	checkCmd.Flags().BoolVar(&fromConfig, "from-config", false, "read usage from the compliance section of the config")

	for _, sub := range []*cobra.Command{htmlCmd, textCmd, jsonLDCmd, cssCmd, validateCmd, checkCmd} {
		sub.Annotations = map[string]string{skipInit: ""}
		cmd.AddCommand(sub)
	}
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return content, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package cmd

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repositorySlug is the GitHub repository releases are published to.
const repositorySlug = "s0up4200/tmdbctl"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion sets the version information injected at build time
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipInit: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tmdbctl %s (built %s, %s/%s)\n",
				version, buildTime, runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}

func newUpdateCmd() *cobra.Command {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:         "update",
		Short:       "Update tmdbctl to the latest release",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipInit: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseVersion(version)
			if err != nil {
				return fmt.Errorf("cannot update a development build: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			if !found {
				return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
			}

			out := cmd.OutOrStdout()
			if latest.LessOrEqual(current.String()) {
				_, err := fmt.Fprintf(out, "tmdbctl %s is up to date\n", current)
				return err
			}
			if checkOnly {
				_, err := fmt.Fprintf(out, "tmdbctl %s is available (current %s)\n", latest.Version(), current)
				return err
			}

			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				return fmt.Errorf("failed to locate executable: %w", err)
			}
			if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
				return fmt.Errorf("failed to update: %w", err)
			}

			_, err = fmt.Fprintf(out, "Updated tmdbctl to %s\n", latest.Version())
			return err
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
	return cmd
}

// parseVersion parses a release version such as "v1.2.3".
func parseVersion(v string) (semver.Version, error) {
	return semver.ParseTolerant(v)
}

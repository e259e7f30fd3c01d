package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/tp-plugin-build/internal/buildinfo"
	"github.com/oshokin/tp-plugin-build/internal/logger"
	"github.com/oshokin/tp-plugin-build/internal/service/generator"
	"github.com/oshokin/tp-plugin-build/internal/version"
)

var (
	// pluginVersion overrides the version from the build info.
	pluginVersion string
	// output is the directory for entry.tp or "-" for standard output.
	output string
	// devMode generates a manifest for running the plugin from a debugger.
	devMode bool
	// buildInfoPath points at version.json.
	buildInfoPath string
	// logLevel is the minimum level written to stderr.
	logLevel string

	// rootCmd represents the base command for generating the plugin manifest.
	rootCmd = &cobra.Command{
		Use:   "gen-entry",
		Short: "Generate the Touch Portal entry.tp manifest.",
		Long: `Builds the plugin entry.tp manifest from the build info file.

The manifest is written to dist/<platform>/entry.tp unless an output directory
is given. Use "-o -" to print it to standard output instead.
In dev mode the start commands are omitted, the file goes to dist/Debug and
the command exits with a non-zero status after writing it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := applyLogLevel(logLevel); err != nil {
				return err
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return generator.Run(ctx, &generator.Options{
				BuildInfoPath: buildInfoPath,
				Version:       pluginVersion,
				Output:        output,
				DevMode:       devMode,
			})
		},
	}
)

// Execute runs the gen-entry CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "Command failed", "error", err)
		os.Exit(1)
	}
}

func applyLogLevel(s string) error {
	level, ok := logger.ParseLogLevel(s)
	if !ok {
		return fmt.Errorf("unknown log level %q", s)
	}

	logger.SetLevel(level)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&pluginVersion, "plugin-version", "v", "", "plugin version string, e.g. 1.2.3.4")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", `output directory for entry.tp, "-" for stdout`)
	rootCmd.Flags().BoolVarP(&devMode, "dev", "d", false, "generate a dev mode manifest")
	rootCmd.Flags().StringVarP(&buildInfoPath, "build-info", "b", buildinfo.DefaultFilename, "path to build info JSON file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/tp-plugin-build/internal/buildinfo"
	"github.com/oshokin/tp-plugin-build/internal/config"
	"github.com/oshokin/tp-plugin-build/internal/logger"
	"github.com/oshokin/tp-plugin-build/internal/service/packager"
	"github.com/oshokin/tp-plugin-build/internal/version"
)

var (
	// buildInfoPath points at version.json.
	buildInfoPath string
	// configPath to the packaging settings YAML file.
	configPath string
	// logLevel is the minimum level written to stderr.
	logLevel string

	// rootCmd represents the base command for building the distribution archive.
	rootCmd = &cobra.Command{
		Use:   "make-distro [platform]",
		Short: "Build the plugin .tpp distribution archive.",
		Long: `Generates entry.tp into dist/<platform>/<system name>, copies the static
files next to it and zips the folder into dist/<system>-<platform>-<version>.tpp.

The platform defaults to PLATFORM_OS from the build info, then to the host OS.
The external archiver binary can be set with the ZIP_BIN environment variable.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var platform string
			if len(args) > 0 {
				platform = args[0]
			}

			return packager.Run(ctx, &packager.Options{
				BuildInfoPath: buildInfoPath,
				Platform:      platform,
				ConfigPath:    configPath,
			})
		},
	}

	// initConfigCmd writes the default packaging settings.
	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write the default packaging settings file.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = filepath.Join(filepath.Dir(buildInfoPath), config.DefaultConfigFilename)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			logger.InfoKV(context.Background(), "Wrote packaging settings", "path", path)

			return nil
		},
	}
)

// Execute runs the make-distro CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "Command failed", "error", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&buildInfoPath, "build-info", "b", buildinfo.DefaultFilename, "path to build info JSON file")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to packaging settings, defaults to distro.yaml next to the build info")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

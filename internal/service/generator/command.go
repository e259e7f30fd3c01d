package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/tp-plugin-build/internal/buildinfo"
	"github.com/oshokin/tp-plugin-build/internal/entry"
	"github.com/oshokin/tp-plugin-build/internal/logger"
	"github.com/oshokin/tp-plugin-build/internal/manifest"
	"github.com/oshokin/tp-plugin-build/internal/version"
)

const (
	// EntryFilename is the manifest file name expected by Touch Portal.
	EntryFilename = "entry.tp"

	// StdoutOutput selects standard output instead of a directory.
	StdoutOutput = "-"

	// DevOutputDir is the dist subdirectory used in dev mode.
	DevOutputDir = "Debug"

	// distDir is the distribution directory under the project root.
	distDir = "dist"

	// entryFileMode is the permission of the written manifest.
	entryFileMode os.FileMode = 0o644
	// outputDirMode is the permission of created output directories.
	outputDirMode os.FileMode = 0o755
)

var (
	// ErrNoVersion is returned when neither the command line nor the build info provide a version.
	ErrNoVersion = errors.New("no plugin version number, use -v <version.number>")
	// ErrDevMode is returned after a dev-mode manifest was written to disk,
	// so release scripts cannot pick it up by accident.
	ErrDevMode = errors.New("generated DEV MODE entry.tp file")
)

// Options contains inputs for the generator entry point.
type Options struct {
	// BuildInfoPath is the version.json path, defaults to buildinfo.DefaultFilename.
	BuildInfoPath string
	// BuildInfo, when set, is used instead of reading BuildInfoPath.
	BuildInfo *buildinfo.Info
	// Version overrides the build-info version string and number.
	Version string
	// Output is the directory for entry.tp or StdoutOutput.
	Output string
	// DevMode omits the start commands and changes the default output directory.
	DevMode bool
	// RootDir is the project root, defaults to the parent of the build-info directory.
	RootDir string
	// Stdout receives the document for StdoutOutput, defaults to os.Stdout.
	Stdout io.Writer
}

// Run generates the manifest. In dev mode a successful file write still returns ErrDevMode.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "gen-entry")

	info, err := resolveBuildInfo(opts)
	if err != nil {
		return err
	}

	versionString, number, err := ResolveVersion(opts.Version, info)
	if err != nil {
		return err
	}

	doc, err := entry.Build(entry.NewConfig(info, versionString, number, opts.DevMode))
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}

	contents, err := manifest.Marshal(doc)
	if err != nil {
		return err
	}

	if opts.Output == StdoutOutput {
		return writeStdout(opts.Stdout, contents)
	}

	outputDir := opts.Output
	if outputDir == "" {
		outputDir = defaultOutputDir(opts, info)
	}

	outfile := filepath.Join(outputDir, EntryFilename)

	if err = os.MkdirAll(outputDir, outputDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Files end at the closing brace; only the stdout form carries a newline.
	if err = os.WriteFile(outfile, bytes.TrimSuffix(contents, []byte("\n")), entryFileMode); err != nil {
		return fmt.Errorf("write %s: %w", outfile, err)
	}

	logger.InfoKV(ctx, "Wrote manifest", "version", number.Hex(), "path", outfile)

	if opts.DevMode {
		logger.Warn(ctx, "!!!=== Generated DEV MODE entry.tp file ===!!!")
		return ErrDevMode
	}

	return nil
}

// ResolveVersion returns the version string and packed number.
// An explicit version wins over the build info, VERSION_NUM included, so the
// string and the number always describe the same release. Otherwise a non-zero
// VERSION_NUM is used as the number and VERSION_STR is parsed when it is absent.
func ResolveVersion(explicit string, info *buildinfo.Info) (string, version.PluginVersion, error) {
	if explicit != "" {
		v, err := version.ParsePluginVersion(explicit)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %w", ErrNoVersion, err)
		}

		return explicit, v, nil
	}

	if info.VersionString == "" {
		return "", 0, ErrNoVersion
	}

	if info.VersionNumber != "" {
		v, err := version.ParsePluginVersionNumber(string(info.VersionNumber))
		if err != nil {
			return "", 0, fmt.Errorf("VERSION_NUM: %w", err)
		}

		if v != 0 {
			return info.VersionString, v, nil
		}
	}

	v, err := version.ParsePluginVersion(info.VersionString)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrNoVersion, err)
	}

	return info.VersionString, v, nil
}

func resolveBuildInfo(opts *Options) (*buildinfo.Info, error) {
	if opts.BuildInfo != nil {
		return opts.BuildInfo, nil
	}

	info, err := buildinfo.LoadOptional(opts.BuildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("load build info: %w", err)
	}

	return info, nil
}

// defaultOutputDir returns <root>/dist/Debug in dev mode and <root>/dist/<platform> otherwise.
func defaultOutputDir(opts *Options, info *buildinfo.Info) string {
	sub := DevOutputDir
	if !opts.DevMode {
		sub = info.ResolvePlatform("")
	}

	return filepath.Join(RootDir(opts.RootDir, opts.BuildInfoPath), distDir, sub)
}

// RootDir returns root, or the parent of the directory holding the build-info file.
func RootDir(root, buildInfoPath string) string {
	if root != "" {
		return root
	}

	if buildInfoPath == "" {
		buildInfoPath = buildinfo.DefaultFilename
	}

	return filepath.Join(filepath.Dir(buildInfoPath), "..")
}

func writeStdout(w io.Writer, contents []byte) error {
	if w == nil {
		w = os.Stdout
	}

	if _, err := w.Write(contents); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

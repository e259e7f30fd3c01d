package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/oshokin/tp-plugin-build/internal/archive"
	"github.com/oshokin/tp-plugin-build/internal/buildinfo"
	"github.com/oshokin/tp-plugin-build/internal/config"
	"github.com/oshokin/tp-plugin-build/internal/logger"
	"github.com/oshokin/tp-plugin-build/internal/service/generator"
)

const (
	// distDir, srcDir and imagesDir are the default layout below the project root.
	distDir   = "dist"
	srcDir    = "src"
	imagesDir = "resources/images"

	// stagingDirMode is the permission of created staging directories.
	stagingDirMode os.FileMode = 0o755
)

var (
	// errNoSystemName is returned when the build info cannot name the package.
	errNoSystemName = errors.New("build info has no SYSTEM_NAME")
	// errNoReleaseVersion is returned when the build info has no VERSION_STR.
	errNoReleaseVersion = errors.New("build info has no VERSION_STR")
)

// Dirs overrides the default directory layout. Empty fields are derived:
// Root is the parent of the build-info directory, Dist is <Root>/dist,
// Src is <Root>/src and Build is <Dist>/<platform>/<system name>.
type Dirs struct {
	Root  string
	Dist  string
	Src   string
	Build string
}

// Options contains inputs for the packager entry point.
type Options struct {
	// BuildInfoPath is the version.json path, defaults to buildinfo.DefaultFilename.
	BuildInfoPath string
	// BuildInfo, when set, is used instead of reading BuildInfoPath.
	BuildInfo *buildinfo.Info
	// Platform overrides PLATFORM_OS and host detection.
	Platform string
	// ConfigPath is the settings file, defaults to distro.yaml next to the build info.
	ConfigPath string
	// Dirs overrides the directory layout.
	Dirs Dirs
	// Archiver replaces the archiver selected by the settings.
	Archiver archive.Archiver
}

// packager holds the resolved inputs of one packaging run.
type packager struct {
	// cfg holds the packaging settings.
	cfg *config.Config
	// info is the decoded build-info file.
	info *buildinfo.Info
	// platform names the dist subfolder and the archive.
	platform string
	// dirs is the resolved directory layout.
	dirs Dirs
	// archiver produces the package from the platform folder.
	archiver archive.Archiver
}

// Run generates the manifest, stages the static files and creates the archive.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "make-distro")

	pkg, err := newPackager(opts)
	if err != nil {
		return fmt.Errorf("initialize packager: %w", err)
	}

	ctx = logger.WithKV(ctx, "platform", pkg.platform)

	if err = pkg.Run(ctx); err != nil {
		return fmt.Errorf("packager failed: %w", err)
	}

	logger.Info(ctx, "Finished!")

	return nil
}

// PackagePath returns <dist>/<system>-<platform>-<version>.<ext>.
func PackagePath(dist string, info *buildinfo.Info, platform, extension string) string {
	return filepath.Join(dist, info.SystemName+"-"+platform+"-"+info.ReleaseVersion()+"."+extension)
}

func newPackager(opts *Options) (*packager, error) {
	info := opts.BuildInfo
	if info == nil {
		var err error

		info, err = buildinfo.Load(opts.BuildInfoPath)
		if err != nil {
			return nil, err
		}
	}

	if info.SystemName == "" {
		return nil, errNoSystemName
	}

	if info.ReleaseVersion() == "" {
		return nil, errNoReleaseVersion
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(filepath.Dir(buildInfoPath(opts.BuildInfoPath)), config.DefaultConfigFilename)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	platform := info.ResolvePlatform(opts.Platform)

	dirs := opts.Dirs
	if dirs.Root == "" {
		dirs.Root = generator.RootDir("", opts.BuildInfoPath)
	}

	if dirs.Dist == "" {
		dirs.Dist = filepath.Join(dirs.Root, distDir)
	}

	if dirs.Src == "" {
		dirs.Src = filepath.Join(dirs.Root, srcDir)
	}

	if dirs.Build == "" {
		dirs.Build = filepath.Join(dirs.Dist, platform, info.SystemName)
	}

	archiver := opts.Archiver
	if archiver == nil {
		archiver = newArchiver(cfg)
	}

	return &packager{
		cfg:      cfg,
		info:     info,
		platform: platform,
		dirs:     dirs,
		archiver: archiver,
	}, nil
}

func newArchiver(cfg *config.Config) archive.Archiver {
	if cfg.Archive.Kind == config.ArchiverBuiltin {
		return archive.NewBuiltin()
	}

	return archive.NewCommand(cfg.ZipBinary())
}

// Run executes the packaging steps in order.
func (p *packager) Run(ctx context.Context) error {
	logger.Info(ctx, "Generating entry.tp")

	if err := os.MkdirAll(p.dirs.Build, stagingDirMode); err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}

	err := generator.Run(ctx, &generator.Options{
		BuildInfo: p.info,
		Output:    p.dirs.Build,
	})
	if err != nil {
		return fmt.Errorf("generate manifest: %w", err)
	}

	logger.InfoKV(ctx, "Copying files", "to", p.dirs.Build)

	if err = copyFiles(p.dirs.Root, p.dirs.Build, p.cfg.RootFiles); err != nil {
		return err
	}

	if err = copyFiles(filepath.Join(p.dirs.Src, filepath.FromSlash(imagesDir)), p.dirs.Build, p.cfg.ImageFiles); err != nil {
		return err
	}

	packagePath, err := filepath.Abs(PackagePath(p.dirs.Dist, p.info, p.platform, p.cfg.Archive.Extension))
	if err != nil {
		return fmt.Errorf("resolve package path: %w", err)
	}

	logger.InfoKV(ctx, "Creating archive", "path", packagePath)

	if err = p.archiver.Archive(ctx, filepath.Dir(p.dirs.Build), packagePath, p.cfg.Archive.Exclude); err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	p.printSummary(ctx, packagePath)

	checksum, err := FileChecksum(packagePath)
	if err != nil {
		return fmt.Errorf("checksum %s: %w", packagePath, err)
	}

	logger.InfoKV(ctx, "Package ready", "path", packagePath, "sha256", checksum)

	return nil
}

// printSummary logs a table of the staged files.
func (p *packager) printSummary(ctx context.Context, packagePath string) {
	var rows [][]string

	err := filepath.WalkDir(p.dirs.Build, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(p.dirs.Build, path)
		if err != nil {
			return err
		}

		rows = append(rows, []string{filepath.ToSlash(rel), strconv.FormatInt(info.Size(), 10)})

		return nil
	})
	if err != nil {
		logger.WarnKV(ctx, "Unable to list staged files", "error", err)
		return
	}

	var builder strings.Builder

	builder.WriteString("Staged files for ")
	builder.WriteString(packagePath)
	builder.WriteString(":\n")

	table := tablewriter.NewWriter(&builder)
	table.Header("File", "Bytes")

	if err = table.Bulk(rows); err == nil {
		err = table.Render()
	}

	if err != nil {
		logger.WarnKV(ctx, "Unable to render staged files", "error", err)
		return
	}

	logger.Info(ctx, builder.String())
}

// copyFiles copies each named file from srcDir into destDir.
func copyFiles(srcDir, destDir string, files []string) error {
	for _, name := range files {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
	}

	return nil
}

func copyFile(src, dest string) (err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, in.Close())
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(filepath.Clean(dest), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func buildInfoPath(path string) string {
	if path == "" {
		return buildinfo.DefaultFilename
	}

	return path
}

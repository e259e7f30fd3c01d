package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Archiver kinds.
const (
	// ArchiverCommand runs an external zip-compatible binary.
	ArchiverCommand = "command"
	// ArchiverBuiltin writes the archive in-process.
	ArchiverBuiltin = "builtin"
)

const (
	// DefaultConfigFilename is the optional settings file next to version.json.
	DefaultConfigFilename = "distro.yaml"

	// DefaultArchiveExtension is the extension Touch Portal expects for plugin packages.
	DefaultArchiveExtension = "tpp"

	// DefaultZipBinary is used when ZIP_BIN is not set.
	DefaultZipBinary = "zip"

	// ZipBinaryEnv overrides the archiver binary.
	ZipBinaryEnv = "ZIP_BIN"

	// DefaultFilePermissions is the permission for written settings files.
	DefaultFilePermissions = 0o600
)

// Config holds packager settings.
type Config struct {
	// RootFiles are copied from the project root into the build directory.
	RootFiles []string `yaml:"root_files"`
	// ImageFiles are copied from <src>/resources/images into the build directory.
	ImageFiles []string `yaml:"image_files"`
	// Archive controls how the package is produced.
	Archive Archive `yaml:"archive"`
}

// Archive holds archiver settings.
type Archive struct {
	// Kind is ArchiverCommand or ArchiverBuiltin.
	Kind string `yaml:"kind"`
	// Binary is the external archiver; ZIP_BIN overrides it at runtime.
	Binary string `yaml:"binary,omitempty"`
	// Extension of the produced package, without the dot.
	Extension string `yaml:"extension"`
	// Exclude lists glob patterns left out of the package.
	Exclude []string `yaml:"exclude"`
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownArchiver is returned for an unsupported archiver kind.
	errUnknownArchiver = errors.New("unknown archiver kind")
	// errNoFiles is returned when nothing would be copied into the package.
	errNoFiles = errors.New("no files to package")
	// errBadFilename is returned for copy entries that escape their source directory.
	errBadFilename = errors.New("file name must be a plain relative path")
)

// Default returns the settings used when no settings file exists.
func Default() *Config {
	return &Config{
		RootFiles:  []string{"README.md", "CHANGELOG.md", "LICENSE.txt"},
		ImageFiles: []string{"tp_icon.png"},
		Archive: Archive{
			Kind:      ArchiverCommand,
			Binary:    DefaultZipBinary,
			Extension: DefaultArchiveExtension,
			Exclude:   []string{"*.log"},
		},
	}
}

// Load reads settings from path. A missing file yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills defaults for empty optional fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if len(cfg.RootFiles)+len(cfg.ImageFiles) == 0 {
		return errNoFiles
	}

	for _, name := range append(append([]string(nil), cfg.RootFiles...), cfg.ImageFiles...) {
		if name == "" || filepath.IsAbs(name) || filepath.Base(name) != name {
			return fmt.Errorf("%w: %q", errBadFilename, name)
		}
	}

	switch cfg.Archive.Kind {
	case "":
		cfg.Archive.Kind = ArchiverCommand
	case ArchiverCommand, ArchiverBuiltin:
	default:
		return fmt.Errorf("%w: %q", errUnknownArchiver, cfg.Archive.Kind)
	}

	if cfg.Archive.Binary == "" {
		cfg.Archive.Binary = DefaultZipBinary
	}

	cfg.Archive.Extension = strings.TrimPrefix(cfg.Archive.Extension, ".")
	if cfg.Archive.Extension == "" {
		cfg.Archive.Extension = DefaultArchiveExtension
	}

	for _, pattern := range cfg.Archive.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	return nil
}

// ZipBinary returns the archiver binary, honouring the ZIP_BIN environment variable.
func (c *Config) ZipBinary() string {
	if bin := strings.TrimSpace(os.Getenv(ZipBinaryEnv)); bin != "" {
		return bin
	}

	return c.Archive.Binary
}

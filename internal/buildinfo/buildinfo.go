package buildinfo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultFilename is the build-info file looked up in the working directory.
const DefaultFilename = "version.json"

// Platform names used in dist folders and archive names.
const (
	PlatformWindows = "Windows"
	PlatformMacOS   = "MacOS"
	PlatformLinux   = "Linux"
)

// ErrNotFound is returned when the build-info file does not exist.
var ErrNotFound = errors.New("build info not found")

// Info is the decoded build-info file.
type Info struct {
	// VersionString is the dotted version, optionally followed by a suffix ("1.0.0.1 beta").
	VersionString string `json:"VERSION_STR"`
	// VersionNumber is an optional precomputed packed version in hexadecimal.
	VersionNumber HexString `json:"VERSION_NUM"`
	// SystemName names the plugin folder, binary and archive.
	SystemName string `json:"SYSTEM_NAME"`
	// ShortName is the display name shown by the host.
	ShortName string `json:"SHORT_NAME"`
	// PluginID prefixes every manifest identifier.
	PluginID string `json:"PLUGIN_ID"`
	// StateNamePrefix prefixes action descriptions and event formats.
	StateNamePrefix string `json:"STATE_NAME_PREFIX"`
	// PlatformOS is the target platform of this build.
	PlatformOS string `json:"PLATFORM_OS"`
	// HomepageURL is linked from the settings description.
	HomepageURL string `json:"HOMEPAGE_URL"`
	// Description is the plugin description.
	Description string `json:"DESCRIPTION"`
}

// HexString holds a hexadecimal number written either as a JSON string or a bare JSON number.
type HexString string

// UnmarshalJSON accepts "01020304" as well as 1020304.
func (h *HexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*h = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*h = HexString(s)

		return nil
	}

	*h = HexString(data)

	return nil
}

// Load reads and decodes the build-info file at path.
func Load(path string) (*Info, error) {
	if path == "" {
		path = DefaultFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("read build info: %w", err)
	}

	var info Info
	if err = json.Unmarshal(contents, &info); err != nil {
		return nil, fmt.Errorf("decode build info %s: %w", path, err)
	}

	return &info, nil
}

// LoadOptional behaves like Load but returns an empty Info when the file is missing.
func LoadOptional(path string) (*Info, error) {
	info, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return new(Info), nil
	}

	return info, err
}

// ReleaseVersion returns the first word of VersionString, as used in archive names.
func (i *Info) ReleaseVersion() string {
	fields := strings.Fields(i.VersionString)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// ResolvePlatform picks the target platform: explicit value first,
// then PLATFORM_OS from the build info, then the host operating system.
func (i *Info) ResolvePlatform(explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}

	if i != nil && i.PlatformOS != "" {
		return i.PlatformOS
	}

	return HostPlatform()
}

// HostPlatform maps runtime.GOOS to a platform name.
func HostPlatform() string {
	switch strings.ToLower(runtime.GOOS) {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMacOS
	default:
		return PlatformLinux
	}
}

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// pluginVersionParts is the maximum number of dotted components packed into a PluginVersion.
	pluginVersionParts = 4
	// pluginVersionPartMask limits every component to one byte.
	pluginVersionPartMask = 0xFF
)

var (
	// ErrEmptyPluginVersion is returned when there is nothing to parse.
	ErrEmptyPluginVersion = errors.New("plugin version is empty")
	// errBadVersionNumber is returned for a precomputed number that is not hexadecimal.
	errBadVersionNumber = errors.New("invalid plugin version number")
)

// PluginVersion is a dotted MAJ.MIN.PATCH.BUILD version packed as
// (MAJ << 24) | (MIN << 16) | (PATCH << 8) | BUILD.
type PluginVersion uint32

// ParsePluginVersion packs a dotted version string.
// Anything after the first '-' or space is ignored, at most four components are used,
// and each component contributes its leading decimal digits (0 when there are none)
// masked to 8 bits. Fewer than four components are packed without padding,
// so "1.2.3" yields 0x010203.
func ParsePluginVersion(s string) (PluginVersion, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "- "); i >= 0 {
		s = s[:i]
	}

	if s == "" {
		return 0, ErrEmptyPluginVersion
	}

	parts := strings.Split(s, ".")
	if len(parts) > pluginVersionParts {
		parts = parts[:pluginVersionParts]
	}

	var v uint32

	for _, part := range parts {
		v = v<<8 | leadingNumber(part)&pluginVersionPartMask
	}

	return PluginVersion(v), nil
}

// ParsePluginVersionNumber parses a precomputed version number given in hexadecimal,
// with or without a 0x prefix.
func ParsePluginVersionNumber(s string) (PluginVersion, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if s == "" {
		return 0, ErrEmptyPluginVersion
	}

	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", errBadVersionNumber, s, err)
	}

	return PluginVersion(n), nil
}

// Hex renders the packed number in lowercase hexadecimal without leading zeros.
func (v PluginVersion) Hex() string {
	return strconv.FormatUint(uint64(v), 16)
}

// ManifestNumber returns the value for the manifest's top-level "version" field:
// the hexadecimal digits read back as a decimal integer, so 1.2.3.4 becomes 1020304.
// Reading stops at the first hex letter, so 1.10.0.0 (0x10a0000) becomes 10
// and a form starting with a letter becomes 0.
func (v PluginVersion) ManifestNumber() int64 {
	return int64(leadingNumber(v.Hex()))
}

// leadingNumber returns the value of the leading decimal digits of s.
func leadingNumber(s string) uint32 {
	var n uint32

	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			break
		}

		n = n*10 + uint32(r-'0')
	}

	return n
}

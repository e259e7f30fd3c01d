package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParsePluginVersion covers packing of dotted strings including suffixes and short forms.
func TestParsePluginVersion(t *testing.T) {
	t.Parallel()

	cases := map[string]PluginVersion{
		"1.2.3.4":      0x01020304,
		"1.0.0.1 beta": 0x01000001,
		"1.2.3.4-rc1":  0x01020304,
		"1.2.3":        0x010203,
		"1.2.3.4.5":    0x01020304,
		"99.99.99.99":  0x63636363,
		"1.2b.x.4":     0x01020004,
		"  2.0.0.0  ":  0x02000000,
		"300.1.1.1":    0x2c010101,
		"0.0.0.0":      0,
	}
	for in, want := range cases {
		got, err := ParsePluginVersion(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParsePluginVersion("   ")
	require.ErrorIs(t, err, ErrEmptyPluginVersion)

	_, err = ParsePluginVersion("-beta")
	require.ErrorIs(t, err, ErrEmptyPluginVersion)
}

// TestParsePluginVersionPacking checks the byte layout for every part in 0-99.
func TestParsePluginVersionPacking(t *testing.T) {
	t.Parallel()

	for a := uint32(0); a < 100; a += 7 {
		for b := uint32(0); b < 100; b += 11 {
			for c := uint32(0); c < 100; c += 13 {
				d := (a + b + c) % 100
				got, err := ParsePluginVersion(fmt.Sprintf("%d.%d.%d.%d", a, b, c, d))
				require.NoError(t, err)
				require.Equal(t, PluginVersion(a<<24|b<<16|c<<8|d), got)
			}
		}
	}
}

// TestParsePluginVersionNumber covers precomputed hexadecimal numbers.
func TestParsePluginVersionNumber(t *testing.T) {
	t.Parallel()

	got, err := ParsePluginVersionNumber("01020304")
	require.NoError(t, err)
	require.Equal(t, PluginVersion(0x01020304), got)

	got, err = ParsePluginVersionNumber("0x1000001")
	require.NoError(t, err)
	require.Equal(t, PluginVersion(0x01000001), got)

	_, err = ParsePluginVersionNumber("")
	require.ErrorIs(t, err, ErrEmptyPluginVersion)

	_, err = ParsePluginVersionNumber("xyz")
	require.Error(t, err)
}

// TestPluginVersionRendering verifies the hex and manifest number forms.
func TestPluginVersionRendering(t *testing.T) {
	t.Parallel()

	v := PluginVersion(0x01020304)
	require.Equal(t, "1020304", v.Hex())
	require.Equal(t, int64(1020304), v.ManifestNumber())

	// 1.10.0.0 has an 'a' in its hex form; only the digits before it count.
	v = PluginVersion(0x010a0000)
	require.Equal(t, "10a0000", v.Hex())
	require.Equal(t, int64(10), v.ManifestNumber())

	require.Equal(t, int64(1100000), PluginVersion(0x01100000).ManifestNumber())
	require.Equal(t, int64(0), PluginVersion(0x0a000000).ManifestNumber())
	require.Equal(t, int64(99999999), PluginVersion(0x99999999).ManifestNumber())
}

package manifest

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T, cfg Config) []byte {
	t.Helper()

	b := newTestBuilder(cfg)
	b.AddSwitchSetting("Send Reports", true, "States & Events")
	b.AddState("devices", StateSpec{ID: "list", Description: "List <all>"})
	b.AddAction(ActionSpec{
		ID:     "device",
		Name:   "Device",
		Format: "{0}",
		Data:   []DataField{b.ChoiceData("device.device", "Device", []string{}, "select a device...")},
	})

	doc, err := b.Finalize()
	require.NoError(t, err)

	out, err := Marshal(doc)
	require.NoError(t, err)

	return out
}

// TestMarshalIsDeterministic builds the same document twice and expects identical bytes.
func TestMarshalIsDeterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t, string(buildSample(t, testConfig())), string(buildSample(t, testConfig())))
}

// TestMarshalLayout checks indentation, key order, empty lists and unescaped HTML characters.
func TestMarshalLayout(t *testing.T) {
	t.Parallel()

	out := string(buildSample(t, testConfig()))

	require.True(t, strings.HasPrefix(out, "{\n    \"api\": 10,\n    \"version\": 1020304,\n"))
	require.Contains(t, out, "States & Events")
	require.Contains(t, out, "List <all>")
	require.Contains(t, out, `"valueChoices": []`)
	require.Contains(t, out, `"connectors": []`)
	require.Contains(t, out, `"hasHoldFunctionality": false`)
	require.NotContains(t, out, `"lines"`)

	order := []string{`"api"`, `"version"`, `"name"`, `"id"`, `"plugin_start_cmd"`, `"plugin_start_cmd_windows"`,
		`"configuration"`, `"settingsDescription"`, `"settings"`, `"categories"`}
	last := -1
	for _, key := range order {
		i := strings.Index(out, key)
		require.Greater(t, i, last, key)
		last = i
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded["categories"], 2)
}

// TestMarshalDevMode leaves out the start command keys entirely.
func TestMarshalDevMode(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DevMode = true

	out := string(buildSample(t, cfg))
	require.NotContains(t, out, "plugin_start_cmd")
}

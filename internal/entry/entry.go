package entry

import (
	"github.com/oshokin/tp-plugin-build/internal/buildinfo"
	"github.com/oshokin/tp-plugin-build/internal/manifest"
	"github.com/oshokin/tp-plugin-build/internal/version"
)

// Category keys.
const (
	CategoryActions  = "actions"
	CategoryPlugin   = "plugin"
	CategoryDevices  = "devices"
	CategoryAssigned = "assigned"
)

// emSpace is U+2001, one em wide; the host keeps it intact in action lines.
const emSpace = "\u2001"

// Placeholder choices shown before the user picks a value.
const (
	selectAction     = "select an action..."
	selectDevice     = "select a device..."
	selectDeviceType = "select a device type..."
)

// appearance is the color scheme and host grouping of the plugin.
//
//nolint:gochecknoglobals // Read-only table.
var appearance = manifest.Configuration{
	ColorLight:     "#473866",
	ColorDark:      "#14101D",
	ParentCategory: "input",
}

// defaultAndFirstDeviceTypes are the device types offering "First" and "Default" device choices.
func defaultAndFirstDeviceTypes() []string {
	return []string{"Controller", "Gamepad", "Joystick", "Throttle", "Wheel"}
}

// NewConfig assembles the builder configuration from build info and a resolved version.
func NewConfig(info *buildinfo.Info, versionString string, v version.PluginVersion, devMode bool) manifest.Config {
	return manifest.Config{
		PluginID:      info.PluginID,
		StatePrefix:   info.StateNamePrefix,
		SystemName:    info.SystemName,
		ShortName:     info.ShortName,
		Description:   info.Description,
		HomepageURL:   info.HomepageURL,
		VersionString: versionString,
		Version:       v,
		DevMode:       devMode,
		Appearance:    appearance,
	}
}

// Build declares the full plugin manifest and returns the finalized document.
func Build(cfg manifest.Config) (*manifest.Document, error) {
	b := manifest.NewBuilder(cfg)

	b.AddCategory(CategoryActions, "")
	b.AddCategory(CategoryPlugin, "Plugin Status")
	b.AddCategory(CategoryDevices, "Device Information")
	b.AddCategory(CategoryAssigned, "Device Assignments")

	addSettings(b)
	addDeviceStates(b)
	addDeviceEvents(b)
	addPluginStates(b)
	addPluginEvents(b)
	addSystemActions(b)

	return b.Finalize()
}

func addSettings(b *manifest.Builder) {
	b.AddSwitchSetting("Send Device Reports as States", true,
		"When enabled, each device event creates & updates a Touch Portal plugin State, with a value for the active control (axis, button, key, etc)."+
			"For greater efficiency, these states can be disabled, for example if only using the (more flexible) Events system to handle input device updates.")
	b.AddSwitchSetting("Send Device Reports as Events", true,
		"When enabled, each device event sends a corresponding Touch Portal plugin Event, with local state values relevant to the event type."+
			"For greater efficiency, these events can be disabled, for example if only using the plugin States system to handle input device updates.")
}

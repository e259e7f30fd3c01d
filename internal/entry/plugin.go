package entry

import "github.com/oshokin/tp-plugin-build/internal/manifest"

func addPluginStates(b *manifest.Builder) {
	b.AddState(CategoryPlugin, manifest.StateSpec{
		ID:          "pluginState",
		Description: "Plugin running state (Stopped/Starting/Started)",
		Default:     "Unknown",
		Choices:     []string{"Stopped", "Starting", "Started", "Unknown"},
	})
	b.AddState(CategoryPlugin, manifest.StateSpec{
		ID:          "currentPage",
		Description: "Name of Page currently active on TP device",
	})
}

func addPluginEvents(b *manifest.Builder) {
	system := b.Config().SystemName

	b.AddEvent(CategoryActions, manifest.EventSpec{
		ID:          "pluginState",
		Name:        "Plugin State Changed",
		Format:      "When the plugin runnings state changes to $val",
		StateID:     "pluginState",
		LocalStates: []manifest.LocalState{{ID: system + ".RunState", Name: "New State"}},
		Choices:     []string{"Stopped", "Starting", "Started"},
	})

	b.AddEvent(CategoryActions, manifest.EventSpec{
		ID:     "pageChange",
		Name:   "Current Page Changed",
		Format: "When the current page on a Touch Portal device changes",
		LocalStates: []manifest.LocalState{
			{ID: system + ".PageChange.PageName", Name: "New Page Name"},
			{ID: system + ".PageChange.PreviousPage", Name: "Previous Page Name"},
			{ID: system + ".PageChange.DeviceName", Name: "Device Name"},
			{ID: system + ".PageChange.DeviceId", Name: "Device ID"},
		},
	})
}

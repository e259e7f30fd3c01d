package entry

import "github.com/oshokin/tp-plugin-build/internal/manifest"

// withDeviceExpression appends the device match expression line and its three fields,
// which occupy data indices 2 to 4.
func withDeviceExpression(b *manifest.Builder, id string, lines []string, data []manifest.DataField) ([]string, []manifest.DataField) {
	lines = append(lines, "Match Expression:"+emSpace+"Device {2} {3} {4}")
	data = append(data,
		b.ChoiceData(id+".matchWhat", "Match Field", []string{"name", "type"}, ""),
		b.ChoiceData(id+".matchType", "Match Type", []string{"equals", "contains", "matches wildcard", "matches RegEx"}, "contains"),
		b.TextData(id+".match", "Match Expression", ""),
	)

	return lines, data
}

func addSystemActions(b *manifest.Builder) {
	pluginActions := []string{
		"Rescan System Devices",
		"Update All States & Events",
		"Send System Displays Report",
	}
	if b.Config().DevMode {
		pluginActions = append(pluginActions, "Shutdown")
	}

	b.AddAction(manifest.ActionSpec{
		Category:    CategoryActions,
		ID:          "plugin",
		Name:        "Plugin Control Actions",
		Description: "Plugin Control Actions.",
		Format:      "{0}",
		Data: []manifest.DataField{
			b.ChoiceData("plugin.action", "Action to Perform", pluginActions, selectAction),
		},
	})

	lines, data := withDeviceExpression(b, "device",
		[]string{"{0} on {1}"},
		[]manifest.DataField{
			b.ChoiceData("device.action", "Action to Perform", []string{
				"Start Reporting",
				"Stop Reporting",
				"Toggle Reporting",
				"Refresh Report",
				"Clear Report Filter",
			}, selectAction),
			b.ChoiceData("device.device", "Device Name", []string{}, selectDevice),
		})
	b.AddActionWithLines(manifest.LinesActionSpec{
		Category: CategoryActions,
		ID:       "device",
		Name:     "Device Control Actions",
		Description: "Perform an action on one or more devices.\n" +
			"A specific device which is currently connected can selected directly, or an expression may be used to select device(s) based on a name or type.",
		Lines: lines,
		Data:  data,
	})

	lines, data = withDeviceExpression(b, "filter",
		[]string{
			"Set Filter: {0} Format reference: [!](a|b|h|k|m|s)[#|#-#] [, ...]",
			"On Device: {1}",
		},
		[]manifest.DataField{
			b.TextData("filter.filter", "Filter Value", "b1-32, !b8-16, a1-4, !a3, !h"),
			b.ChoiceData("filter.device", "Device Name", []string{}, selectDevice),
		})
	b.AddActionWithLines(manifest.LinesActionSpec{
		Category: CategoryActions,
		ID:       "filter",
		Name:     "Set Device Report Filter",
		Description: "Set filter(s) for device reporting.\n" +
			"See online documentation for details." +
			"The default filter value example means: buttons 1-32 but not 8-16, axes 1-4 but not 3, no hats",
		Lines: lines,
		Data:  data,
	})

	b.AddAction(manifest.ActionSpec{
		Category: CategoryActions,
		ID:       "default",
		Name:     "Set a Default Device For Type",
		Description: "Assign a specific device to be the default for a particular type. " +
			`This allows using the "Default ..." type selections in the "Device Control" and "Device Report Filter" plugin actions.` + "\n" +
			`To remove an assignment, choose the "Remove Assigned Device" option at the end of the name list, instead of a device name.`,
		Format: "Set device {0} as default for {1} type",
		Data: []manifest.DataField{
			b.ChoiceData("default.device", "Device Name", []string{}, selectDevice),
			b.ChoiceData("default.type", "Device Type", defaultAndFirstDeviceTypes(), selectDeviceType),
		},
	})
}

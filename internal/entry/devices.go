package entry

import (
	"strings"

	"github.com/oshokin/tp-plugin-build/internal/manifest"
)

// deviceEventStatePrefix starts the local state ids of device events.
const deviceEventStatePrefix = "InputDevice"

// deviceStateID returns "InputDevice.[event.]state".
func deviceStateID(event, state string) string {
	if event == "" {
		return deviceEventStatePrefix + "." + state
	}

	return deviceEventStatePrefix + "." + event + "." + state
}

// deviceBaseStates are the local states every device event carries.
func deviceBaseStates(event string) []manifest.LocalState {
	return []manifest.LocalState{
		{ID: deviceStateID(event, "device.name"), Name: "Device Name"},
		{ID: deviceStateID(event, "device.type"), Name: "Device Type"},
		{ID: deviceStateID(event, "device.typeId"), Name: "Device Type ID"},
	}
}

// deviceEventStates returns the base states followed by event-specific ones given as id/name pairs.
func deviceEventStates(event string, pairs ...string) []manifest.LocalState {
	states := deviceBaseStates(event)
	for i := 0; i+1 < len(pairs); i += 2 {
		states = append(states, manifest.LocalState{ID: deviceStateID(event, pairs[i]), Name: pairs[i+1]})
	}

	return states
}

func addDeviceStates(b *manifest.Builder) {
	for _, s := range []manifest.StateSpec{
		{ID: "deviceList", Description: "List of detected input device names and types"},
		{ID: "reportingDeviceList", Description: "List of devices with active reports"},
		{ID: "lastAddedDevice", Description: "Name and type of most recently found device"},
		{ID: "lastRemovedDevice", Description: "Name and type of most recently removed device"},
		{ID: "deviceReportStarted", Description: "Name and type of most recent device for which reporting started"},
		{ID: "deviceReportStopped", Description: "Name and type of most recent device for which reporting stopped"},
		{ID: "deviceStatusChange", Description: `Status of a device changed (triggers "Any Device Status Changed" event)`},
	} {
		b.AddState(CategoryDevices, s)
	}

	for _, typ := range defaultAndFirstDeviceTypes() {
		lower := strings.ToLower(typ)
		b.AddState(CategoryAssigned, manifest.StateSpec{
			ID:          "assigned.first." + lower,
			Description: "First " + typ + " - Name of first discovered " + typ + " type device",
		})
		b.AddState(CategoryAssigned, manifest.StateSpec{
			ID:          "assigned.default." + lower,
			Description: "Default " + typ + " - Name of configured default " + typ + " type device",
		})
	}
}

func addDeviceEvents(b *manifest.Builder) {
	b.AddEvent(CategoryActions, manifest.EventSpec{
		ID:          "deviceEvent",
		Name:        "Device Status Event",
		Format:      "When device status (Found/Removed/Started/Stopped) changes",
		LocalStates: deviceEventStates("", "device.status", "Device Status (Found/Removed/Started/Stopped)"),
	})

	for _, ev := range []struct {
		id, name, format, event string
		states                  []string
	}{
		{"deviceAxis", "Device Axis Event", "When device axis value changes", "AxisEvent",
			[]string{"index", "Axis Index", "value", "Axis Value"}},
		{"deviceButton", "Device Button Event", "When device button state changes", "ButtonEvent",
			[]string{"index", "Button Index", "state", "Button State", "x", "X Position", "y", "Y Position"}},
		{"deviceHat", "Device Hat Event", "When device hat value changes", "HatEvent",
			[]string{"index", "Hat Index", "value", "Hat Value"}},
		{"deviceKey", "Device Key Event", "When device key state changes", "KeyEvent",
			[]string{"key", "Key Code", "name", "Key Name", "text", "Key Text", "down", "Is Down", "repeat", "Is Repeating", "nativeKey", "Native Key Code"}},
		{"deviceScroll", "Device Scroll Event", "When device scroll value changes", "ScrollEvent",
			[]string{"index", "Control Index", "relX", "Relative X Movement", "relY", "Relative Y Movement", "x", "X Position", "y", "Y Position"}},
		{"deviceMotion", "Device Motion Event", "When device position value changes", "MotionEvent",
			[]string{"index", "Control Index", "x", "X Position", "y", "Y Position", "relX", "Relative X Movement", "relY", "Relative Y Movement"}},
	} {
		b.AddEvent(CategoryActions, manifest.EventSpec{
			ID:          ev.id,
			Name:        ev.name,
			Format:      ev.format,
			LocalStates: deviceEventStates(ev.event, ev.states...),
		})
	}

	b.AddEvent(CategoryActions, manifest.EventSpec{
		ID:      "deviceStatusChange",
		Name:    "Any Device's Status Changed",
		Format:  "When any Input Device's status changes to: $val",
		StateID: "deviceStatusChange",
		Choices: []string{"Found", "Removed", "Started", "Stopped"},
	})
}

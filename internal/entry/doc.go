// Package entry declares the contents of the input-device plugin manifest:
// its categories, settings, device and plugin states, events and actions.
package entry

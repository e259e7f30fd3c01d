// Package version holds two kinds of version data.
//
// Version, Commit and BuildTime describe the tools themselves and are injected
// at build time via Go ldflags. PluginVersion is the packed four-part number
// written into the generated plugin manifest and its data fields.
package version

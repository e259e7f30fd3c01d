// Package buildinfo reads the version.json file produced by the CMake build.
//
// It carries the plugin identity (ids, names, URLs), the version and the
// target platform shared by the manifest generator and the packager.
package buildinfo

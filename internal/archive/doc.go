// Package archive produces the distributable plugin package.
//
// Command shells out to a zip-compatible binary the same way the release
// scripts always did; Builtin writes an equivalent archive in-process for
// hosts without one.
package archive

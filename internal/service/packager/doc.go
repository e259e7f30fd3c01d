// Package packager builds the distributable .tpp archive.
//
// It runs the manifest generator into the staging directory, copies the
// static files next to it and archives the platform folder, stopping at the
// first failure.
package packager

// Package generator writes the entry.tp manifest.
//
// It resolves the plugin version from the command line or the build-info file,
// builds the document through the entry declarations and writes it to a file
// or to standard output.
package generator

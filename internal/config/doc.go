// Package config defines the packager settings and provides helpers to load,
// validate and save them in YAML format.
//
// Without a settings file the packager uses Default: the static file lists,
// the .tpp archive extension, *.log exclusion and the external zip archiver.
package config

// Package logger wraps zap with a console encoder that writes to stderr,
// leaving stdout free for generated documents.
//
// Callers carry the logger in a context (ToContext/FromContext/WithName/WithKV)
// and log through the package-level helpers (Info, InfoKV, Warn, ...).
package logger

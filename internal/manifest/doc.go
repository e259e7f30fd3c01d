// Package manifest builds the entry.tp document read by Touch Portal.
//
// A Builder accumulates categories, states, events, actions and connectors in
// call order (the host renders them in that order) and produces the final
// Document through Finalize, which also rejects duplicate identifiers.
// FormatTemplate and the data field constructors are pure helpers used while
// declaring actions.
package manifest

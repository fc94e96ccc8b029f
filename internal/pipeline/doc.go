// Package pipeline drives the per-instrument price sync sequence: resolve
// window, fetch and normalize, enrich, write to each enabled sink.
//
// Instruments are processed strictly one at a time and share nothing but
// the read-only run configuration. The failure isolation unit is one
// instrument: a fetch or sink failure is logged and the run moves on, and
// the two sinks fail independently of each other.
package pipeline

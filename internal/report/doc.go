// Package report turns a diff.Report into the line-oriented transcript
// printed by capdiff. Output goes to a Sink; mirroring to other destinations
// is done by composing sinks with MultiSink.
package report

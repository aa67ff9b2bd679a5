// Package main hosts the reelfx CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, builds an effects engine
// from the configured profile, applies scene files to it and renders frame
// ranges. Recorded renders are journaled to the project store, which the
// sessions commands read back.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

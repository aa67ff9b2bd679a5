// Package render turns frame requests into render descriptors.
//
// Options are validated and reduced to a canonical fingerprint that, with the
// frame number and time, keys an LRU cache. A miss is planned by the caller
// (which knows the active effects and layers) and handed to a Backend, the
// seam to the external GPU/codec renderer. Only completed renders are cached.
package render

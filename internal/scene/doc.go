// Package scene reads TOML scene documents and applies them to an engine.
//
// A scene declares effects (keyed so layers can reference them), preset
// applications, layers and the frame range to render. The CLI's render
// command is built on it; the engine itself never reads files.
package scene

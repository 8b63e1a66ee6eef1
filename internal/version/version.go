// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - HTTP API with Prometheus metrics, altitude traces and moonrise in Bodies view
// 0.3.0 - Night lights, zoom-eased sky curves, YAML/JSON preset files
// 0.2.0 - Moon phase, sublunar point, daylight band time slider
// 0.1.0 - Initial release: twilight phase blending, TUI, headless summary and JSON export

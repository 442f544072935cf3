// Package tracing wraps OpenTelemetry so that the simulator can record one
// span per run and one per scheduling cycle without importing the SDK
// directly.  Until Init is called the global no-op provider is in effect and
// spans cost nothing.
package tracing

// Package telemetry builds the process logger and the Prometheus collector
// that observes delegation activity.
package telemetry

// Package tracing wires OpenTelemetry into the service.
//
// Init installs an SDK tracer provider with parent-based ratio sampling and
// the W3C trace context propagator. Middleware opens a server span per HTTP
// request and echoes the trace ID in the X-Trace-Id header; StartSpan opens
// internal spans for the counting use case.
package tracing

// Package observability groups the logging, metrics and tracing packages
// shared by cmd/api and cmd/charcount. It contains no code of its own.
package observability

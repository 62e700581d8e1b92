// Package metrics owns every Prometheus collector the service exports.
//
// Collectors are registered once with the default registry at package
// initialisation; other packages record through the Record* helpers or the
// Recorder type instead of creating collectors of their own, so that test
// binaries and the server never register a name twice.
//
// HTTP collectors are labelled by normalised path, method and status.
// Counting collectors are labelled by operation and outcome, for example
// charcount_requests_total{operation="count_in_range",outcome="index_out_of_range"}.
package metrics

// Package observability carries the ambient logging and metrics stack:
// structured logging via log/slog configured from LOG_LEVEL/LOG_FORMAT,
// and Prometheus counters/histograms that the server and scheduler
// binaries serve over /metrics via promhttp.
package observability

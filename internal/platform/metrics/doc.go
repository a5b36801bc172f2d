// Package metrics records HTTP request counts and latencies with
// Prometheus and exposes them for scraping.
package metrics

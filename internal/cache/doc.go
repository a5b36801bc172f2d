// Package cache provides the read-through entity cache used by the services.
//
// Values are stored as JSON. A Redis-backed implementation is used when a
// Redis URL is configured; otherwise NoopCache turns every lookup into a miss.
// Cache failures never fail a request: GetOrCompute logs them and falls back
// to the compute function.
package cache

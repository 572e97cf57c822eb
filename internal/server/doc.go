// Package server exposes the HTTP surface: ingest and read endpoints for
// analysis records, analytics and performance snapshots, analyzer status,
// and the operational endpoints (liveness, readiness, metrics, version).
package server

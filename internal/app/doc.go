// Package app wires the history store, the strategy engine, the analytics
// cache, and the performance monitor into the ingest-and-read service the
// HTTP surface talks to.
package app

// Package history provides the size-bounded, ordered, persistent log of
// analysis records. The newest record is always first, the log never exceeds
// its capacity, and corrupted persisted state recovers to an empty log.
package history

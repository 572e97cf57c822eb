// Package redis provides the Redis client used for history and theme
// persistence, instrumented with metrics and circuit breaker hooks.
package redis

// Package redis builds the shared Redis client and the per-user request
// limiter backed by it.
package redis

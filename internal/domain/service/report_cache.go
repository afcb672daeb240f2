// Package service defines interfaces for supporting infrastructure
// consumed by the use case layer.
package service

import (
	"context"
	"time"
)

// ReportCache caches serialized pipeline reports for a short TTL. It is
// optional: a nil ReportCache disables caching and every invocation
// recomputes. Implementations must treat entries as whole reports,
// never partial results.
type ReportCache interface {
	// Get unmarshals the cached report for key into dest. The boolean
	// reports whether a fresh entry existed.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

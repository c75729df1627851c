package usecasecontract

import "time"

// IConfigProvider exposes application configuration to the usecases.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	// GetReactionCountsTTL bounds staleness of cached reaction aggregates.
	// Invalidation-on-write is the consistency mechanism; the TTL only
	// covers missed invalidations.
	GetReactionCountsTTL() time.Duration
	GetPostCacheTTL() time.Duration
}

package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrTokenRequired     = errors.New("access token is required")
	ErrTokenExpired      = errors.New("jwt expired")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenMalformed    = errors.New("jwt malformed")
	ErrUpstream          = errors.New("upstream request failed")
	ErrUpstreamPayload   = errors.New("upstream returned malformed payload")
	ErrSentinelCollision = errors.New("department id collides with synthetic root id")
	ErrUnknownSourceKind = errors.New("unknown data source kind")
	ErrCacheMiss         = errors.New("cache miss")
)

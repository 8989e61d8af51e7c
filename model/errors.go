package model

import "errors"

// errors returned by the badge pipeline
// the HTTP layer forwards err.Error() as is, so wrapped upstream messages stay readable
var (
	ErrUpstreamRequestFailed = errors.New("UPSTREAM_REQUEST_FAILED")
	ErrRateLimitReached      = errors.New("RATE_LIMIT_REACHED")
	ErrInvalidUsageValue     = errors.New("INVALID_USAGE_VALUE")
	ErrDivisionUndefined     = errors.New("DIVISION_UNDEFINED")
)

package redis

import "errors"

var (
	// ErrFailedToParseConnString indicates a malformed connection URL.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")

	// ErrNotReady indicates all connection attempts were exhausted.
	ErrNotReady = errors.New("redis connection is not ready")

	// ErrHealthcheckFailed indicates the server did not answer a ping.
	ErrHealthcheckFailed = errors.New("healthcheck failed, connection is not available")
)

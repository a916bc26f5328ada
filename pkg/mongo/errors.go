package mongo

import "errors"

var (
	// ErrFailedToConnect indicates all connection attempts were exhausted.
	ErrFailedToConnect = errors.New("failed to connect to mongo")

	// ErrHealthcheckFailed indicates the server did not answer a ping.
	ErrHealthcheckFailed = errors.New("healthcheck failed, connection is not available")
)

package queue

import "errors"

var (
	// ErrRepositoryNil is returned when a nil repository is provided.
	ErrRepositoryNil = errors.New("repository cannot be nil")

	// ErrKindEmpty is returned when a job is enqueued without a reference.
	ErrKindEmpty = errors.New("job kind cannot be empty")

	// ErrPayloadMarshal is returned when the payload cannot be serialized.
	ErrPayloadMarshal = errors.New("failed to marshal job payload")

	// ErrJobCreate is returned when job creation in storage fails.
	ErrJobCreate = errors.New("failed to create job in storage")

	// ErrRegistryNil is returned when a worker is built without a registry.
	ErrRegistryNil = errors.New("hook registry cannot be nil")

	// ErrJobNotFound is returned for status updates on unknown jobs.
	ErrJobNotFound = errors.New("job not found")
)

package core

import "errors"

var (
	// ErrDataUnavailable: the channel has no messages in the window.
	ErrDataUnavailable = errors.New("no interactions in window")

	// ErrEmptyGraph: interactions exist but none produced a usable edge.
	ErrEmptyGraph = errors.New("no usable trust edges")

	// ErrNoSeedAvailable: no admins or explicit seed users to anchor the
	// propagation.
	ErrNoSeedAvailable = errors.New("no seed available")

	// ErrEngineFailure: the engine exited non-zero or its output could
	// not be parsed.
	ErrEngineFailure = errors.New("engine failure")

	// ErrMalformedRecord: a record failed structural checks. Malformed
	// interaction records are dropped where they are read; a malformed
	// engine output row fails the channel as an ErrEngineFailure.
	ErrMalformedRecord = errors.New("malformed record")
)

package ice

import "errors"

var (
	// ErrNilMedia indicates an operation was attempted on a nil media stream.
	ErrNilMedia = errors.New("media stream is nil")

	// ErrUnknownComponent indicates the component id is not registered with
	// the media stream.
	ErrUnknownComponent = errors.New("no such component")

	// ErrZeroComponent indicates a component id of zero was supplied.
	ErrZeroComponent = errors.New("component id must not be zero")

	// ErrNilBaseCandidate indicates a derived candidate was requested without
	// a base candidate.
	ErrNilBaseCandidate = errors.New("base candidate is nil")

	// ErrFoundationEmpty indicates a remote candidate was supplied without a
	// foundation.
	ErrFoundationEmpty = errors.New("foundation is empty")

	// ErrNilAddress indicates a candidate was supplied without a transport
	// address.
	ErrNilAddress = errors.New("address is not set")
)

package snapshot

import "errors"

var (
	// ErrFormat indicates a frame that decodes but does not describe a valid system.
	ErrFormat = errors.New("snapshot: invalid frame")

	// ErrUnknownCompression indicates a Compression value outside the known set.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

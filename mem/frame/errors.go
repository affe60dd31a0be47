package frame

import "errors"

var (
	// ErrInsufficientFrames indicates that fewer frames are free than requested.
	ErrInsufficientFrames = errors.New("frame: insufficient free frames")

	// ErrFrameCount indicates a non-positive pool size.
	ErrFrameCount = errors.New("frame: frame count must be positive")

	// ErrBadRequest indicates a negative allocation request.
	ErrBadRequest = errors.New("frame: negative frame request")

	// ErrBadIndex indicates a frame index outside [0, frames).
	ErrBadIndex = errors.New("frame: index out of range")
)

package unshred

import "errors"

var (
	// ErrInvalidDimensions is returned for images with zero width or height.
	ErrInvalidDimensions = errors.New("image has zero width or height")

	// ErrInvalidStripWidth is returned for a negative explicit strip width.
	ErrInvalidStripWidth = errors.New("strip width must be positive")

	// ErrIndivisibleWidth is returned when the strip width does not evenly
	// divide the image width.
	ErrIndivisibleWidth = errors.New("strip width does not divide image width")

	// ErrWidthDetectionFailed reports that no boundary matched within the
	// bounded relaxation search and the default width is unusable. Detect
	// returns it alongside the default width on every miss.
	ErrWidthDetectionFailed = errors.New("strip width detection failed")
)

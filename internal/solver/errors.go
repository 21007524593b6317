package solver

import "errors"

// Structural configuration errors. A solve returning one of these produced
// no output.
var (
	ErrMissingAnchors         = errors.New("no anchors declared for polarity")
	ErrMissingInvertedAnchors = errors.New("key colours require inverted anchors")
	ErrMissingSurface         = errors.New("surface has no solved background")
	ErrDuplicateSlug          = errors.New("duplicate surface slug")
	ErrInvalidPolarity        = errors.New("invalid polarity")
	ErrAnchorOutOfRange       = errors.New("anchor background outside [0,1]")
	ErrEmptySlug              = errors.New("surface slug is empty")
)

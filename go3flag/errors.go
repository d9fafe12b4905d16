package go3flag

import "errors"

// Errors
var (
	ErrInvalidEdge    = errors.New("invalid 3-graph edge")
	ErrTypeNotPlain   = errors.New("type must not contain labelled vertices")
	ErrTypeMismatch   = errors.New("flag does not carry the given type")
	ErrBadVtxCount    = errors.New("bad vertex count")
	ErrBadPermutation = errors.New("bad vertex permutation")
	ErrBadEncoding    = errors.New("bad flag encoding")
	ErrBadConstraint  = errors.New("bad constraint expression")
	ErrBadConfig      = errors.New("bad problem config")
	ErrBadDedupSet    = errors.New("unknown dedup set")
	ErrBadOrbits      = errors.New("bad orbit partition")
)

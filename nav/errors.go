package nav

import "errors"

// Errors reported by graph construction and queries. Arc-contract
// violations are returned by AddArc before any state changes; a failed call
// never leaves a partially-valid arc behind.
var (
	ErrFrozen           = errors.New("nav: graph is frozen")
	ErrNotFrozen        = errors.New("nav: graph is still under construction")
	ErrNodeNotFound     = errors.New("nav: node not found")
	ErrArcNotFound      = errors.New("nav: arc not found")
	ErrSelfLoop         = errors.New("nav: arc endpoints must be distinct")
	ErrNonPositiveCost  = errors.New("nav: arc cost must be positive")
	ErrNonUnitDirection = errors.New("nav: start direction must be unit length")
	ErrEmptyGraph       = errors.New("nav: graph has no nodes")
)

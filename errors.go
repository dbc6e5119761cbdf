package releasefeed

import "errors"

// Error
var (
	ErrInvalidSlug             = errors.New("invalid slug format, expected 'owner/name'")
	ErrIncorrectParameterOwner = errors.New("incorrect parameter \"owner\"")
	ErrIncorrectParameterRepo  = errors.New("incorrect parameter \"repo\"")
	ErrUpstreamFetch           = errors.New("cannot fetch release")
	ErrParse                   = errors.New("cannot parse releases")
	ErrNoMatchingRelease       = errors.New("no release found")
	ErrIncomparableVersion     = errors.New("incomparable version")
)

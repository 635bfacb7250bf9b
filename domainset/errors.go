package domainset

import "errors"

// Error values returned by Compile and FromSerialized. These are the
// input-shape, capacity and storage errors of the error taxonomy; Find reports failures through the
// distinct Result value InvalidInput instead, never through one of these.
var (
	ErrNoPatterns        = errors.New("domainset: no patterns")
	ErrBadValue          = errors.New("domainset: invalid pattern")
	ErrTopLevelDomain    = errors.New("domainset: top-level patterns are not supported")
	ErrTooManyPopular    = errors.New("domainset: too many popular suffixes")
	ErrFailedToCalibrate = errors.New("domainset: failed to calibrate")
	ErrSmallPlace        = errors.New("domainset: destination buffer too small")
)

package usage

import "errors"

// ErrLimitReached indicates the provider exceeded their screening allowance.
var ErrLimitReached = errors.New("limit reached")

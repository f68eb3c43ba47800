package phase

import "errors"

// ErrInvalidConfiguration is returned when table parameters are rejected before
// any computation takes place.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrNumericDegenerate is returned when a NaN or infinite value reaches delay conversion.
var ErrNumericDegenerate = errors.New("numeric degenerate value")

package field

import "errors"

// ErrNoSurface is returned by Attach when there is nothing to draw on.
// Hosts treat it as non-fatal: the field simply never renders.
var ErrNoSurface = errors.New("field: no drawing surface available")

package effect

import "errors"

// ErrDestroyed is returned by any operation invoked after Destroy.
var ErrDestroyed = errors.New("effect: instance destroyed")

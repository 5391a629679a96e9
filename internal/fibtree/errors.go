package fibtree

import "errors"

// ErrInvalidLevels indicates a tree was requested with fewer than one level.
var ErrInvalidLevels = errors.New("fibtree: level count must be at least 1")

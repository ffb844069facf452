package database

import "errors"

// ErrFieldNotAllowed marks an update against a column outside the fixed
// allow-list. No statement has been built when it is returned.
var ErrFieldNotAllowed = errors.New("field not allowed for update")

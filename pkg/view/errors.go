package view

import "errors"

// ErrNoValue is returned by ModAndGet and the ModAndExtract functions when the
// modification finished without ever running its continuation.
var ErrNoValue = errors.New("view: modification completed without a value")

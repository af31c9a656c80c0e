package container

import "os/exec"

// errNoRuntime wraps exec.ErrNotFound so callers can classify a missing
// runtime the same way as a missing binary.
var errNoRuntime = exec.ErrNotFound

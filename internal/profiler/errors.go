package profiler

import "errors"

// ErrNotProfiled is returned when a component that declares no profiled
// methods is wrapped for profiling.
var ErrNotProfiled = errors.New("component has no profiled methods")

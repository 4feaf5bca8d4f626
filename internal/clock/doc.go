// Package clock provides the time source used by the crawler and profiler.
//
// Design decision: Components never call time.Now directly. They receive a
// Clock at construction because:
//  1. Deadline checks must be testable without sleeping
//  2. Profiling reports must be reproducible in tests
//  3. The same component can run against wall time in production
package clock

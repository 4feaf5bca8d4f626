// Package profiler measures how long profiled methods take.
//
// Components opt in by implementing Profiled and listing the methods whose
// calls should be timed. Decorators in the owning packages (for example
// crawler.WithProfiling) call Start before delegating and the returned stop
// function afterwards, so every call is recorded, including failing ones.
//
// Design decision: We use explicit decorators instead of reflection-based
// proxies because:
//  1. Go has no runtime proxy for arbitrary interfaces
//  2. A decorator is checked by the compiler against the interface it wraps
//  3. The timing code stays visible at the call site
package profiler

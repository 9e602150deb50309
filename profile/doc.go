// Package profile provides optional runtime profiling for calc.
//
// Profiling is compiled in only with the "pprof" build tag and is backed by
// [github.com/pkg/profile]. Without the tag, [Modes] is empty and
// [Profiler.Start] always returns a no-op.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/calc"}
//	defer p.Start().Stop()
//
// Profile files are written under Path with names matching the mode (for
// example, cpu.pprof). Analyze them with go tool pprof:
//
//	go tool pprof -http=: /tmp/calc/cpu.pprof
//
// With the tag, importing this package also registers the [net/http/pprof]
// handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Package profile provides optional runtime profiling for ffins.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
//
// With the tag, [github.com/pkg/profile] writes a profile named after the
// selected mode (cpu.pprof, mem.pprof, ...) into [Profiler.Path] when the
// returned [Stopper] is stopped:
//
//	stop := profile.Profiler{Mode: "cpu", Path: dir}.Start()
//	defer stop.Stop()
//
// Analyze the output with go tool pprof, for example:
//
//	go tool pprof -http=: ffins cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

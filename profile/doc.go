// Package profile provides optional runtime profiling for critfail.
//
// Profiling is built on [github.com/pkg/profile] and only compiled in with
// the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// # Modes
//
// With the tag, [Modes] lists the supported modes: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread and trace. A profile is written to the
// profiler's Path as <mode>.pprof when [Stopper.Stop] is called:
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath(dir))
//	defer p.Start().Stop()
//
// The resulting file is read with go tool pprof:
//
//	go tool pprof -http=: $XDG_CACHE_HOME/critfail/pprof/cpu.pprof
//
// Building with the tag also registers the net/http/pprof handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

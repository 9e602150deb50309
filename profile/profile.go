package profile

// Stopper stops a running profiler.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported Mode disables profiling.
	Mode string
	// Path is the output directory. The [github.com/pkg/profile] default is
	// used when empty.
	Path string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Enabled reports whether p would start a profiler in this build.
func (p Profiler) Enabled() bool {
	if p.Mode == "" {
		return false
	}

	for _, m := range Modes() {
		if m == p.Mode {
			return true
		}
	}

	return false
}

// Start starts the profiler. Stop on the returned value is always safe to
// call, including when profiling is disabled.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}

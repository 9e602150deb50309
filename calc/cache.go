package calc

import (
	"sync"
	"sync/atomic"

	"github.com/segmentio/fasthash/fnv1a"
)

// maxCacheEntries bounds the number of programs kept by the program cache.
// Sources compiled after the bound is reached are not cached.
const maxCacheEntries = 1 << 12

var (
	// programCache maps the FNV-1a hash of a source text to its *compiled.
	programCache sync.Map

	cacheEntries atomic.Int64
)

// compiled records the outcome of compiling source, including failures,
// since compilation is deterministic.
type compiled struct {
	source string
	prog   *Program
	err    error
}

// compileCached is [Compile] backed by the process-wide program cache.
// The cached flag reports whether the result came from the cache.
func compileCached(text string) (prog *Program, cached bool, err error) {
	key := fnv1a.HashString64(text)

	if v, ok := programCache.Load(key); ok {
		if c := v.(*compiled); c.source == text {
			return c.prog, true, c.err
		}

		// Hash collision: compile without replacing the resident entry.
		prog, err = Compile(text)

		return prog, false, err
	}

	prog, err = Compile(text)

	if cacheEntries.Load() < maxCacheEntries {
		if _, loaded := programCache.LoadOrStore(key, &compiled{text, prog, err}); !loaded {
			cacheEntries.Add(1)
		}
	}

	return prog, false, err
}

// ClearCache drops all cached programs.
func ClearCache() {
	programCache.Clear()
	cacheEntries.Store(0)
}

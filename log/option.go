package log

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// mutate returns an Option that applies fn to a config while holding its
// write lock. A config without a mutex is given one.
func mutate(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = newMutex()
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		fn(&c)

		return c
	}
}

package geocoding

import (
	"context"
	"log/slog"
	"sync"
)

// loadState tracks the lifecycle of the lazily constructed provider.
type loadState int

const (
	stateUnloaded loadState = iota
	stateLoading
	stateLoaded
	stateFailed
)

// Loader constructs the geocoding provider lazily, at most once per
// process. Concurrent callers of EnsureLoaded join the in-flight
// construction instead of starting another one. A failed construction is
// sticky: every later call gets the recorded error, and a process restart
// is the recovery path.
type Loader struct {
	mu       sync.Mutex
	state    loadState
	provider Provider
	err      error
	ready    chan struct{}
	build    func() (Provider, error)
	log      *slog.Logger
}

// NewLoader creates a loader that will build a provider from the given
// configuration on first use.
func NewLoader(config ProviderConfig) *Loader {
	return &Loader{
		build: func() (Provider, error) { return NewProvider(config) },
		log:   config.Logger,
	}
}

// NewLoaderWithBuilder creates a loader with a custom build function.
// Useful for testing the loading states.
func NewLoaderWithBuilder(build func() (Provider, error), log *slog.Logger) *Loader {
	return &Loader{build: build, log: log}
}

// EnsureLoaded returns the shared provider, constructing it on the first
// call. Callers blocked on an in-flight construction are released when it
// finishes, or earlier when their context is canceled.
func (l *Loader) EnsureLoaded(ctx context.Context) (Provider, error) {
	l.mu.Lock()

	switch l.state {
	case stateLoaded:
		provider := l.provider
		l.mu.Unlock()
		return provider, nil

	case stateFailed:
		err := l.err
		l.mu.Unlock()
		return nil, err

	case stateLoading:
		ready := l.ready
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ready:
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.state == stateFailed {
			return nil, l.err
		}
		return l.provider, nil

	default: // stateUnloaded
		l.state = stateLoading
		l.ready = make(chan struct{})
		ready := l.ready
		l.mu.Unlock()

		provider, err := l.build()

		l.mu.Lock()
		if err != nil {
			l.state = stateFailed
			l.err = err
			l.log.Error("Geocoding provider construction failed", "error", err)
		} else {
			l.state = stateLoaded
			l.provider = provider
		}
		close(ready)
		l.mu.Unlock()

		return provider, err
	}
}

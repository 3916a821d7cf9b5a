package geocoding_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nursultantorobaev/selfhub-services/internal/geocoding"
	"github.com/nursultantorobaev/selfhub-services/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct{}

func (staticProvider) Geocode(_ context.Context, _ string) (*models.GeoPoint, error) {
	return &models.GeoPoint{Latitude: 1, Longitude: 2}, nil
}

func TestLoaderEnsureLoaded(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	t.Run("builds once and reuses the provider", func(t *testing.T) {
		t.Parallel()

		var builds atomic.Int32
		loader := geocoding.NewLoaderWithBuilder(func() (geocoding.Provider, error) {
			builds.Add(1)
			return staticProvider{}, nil
		}, logger)

		first, err := loader.EnsureLoaded(t.Context())
		require.NoError(t, err)
		second, err := loader.EnsureLoaded(t.Context())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), builds.Load())
	})

	t.Run("concurrent callers join the in-flight load", func(t *testing.T) {
		t.Parallel()

		var builds atomic.Int32
		release := make(chan struct{})
		loader := geocoding.NewLoaderWithBuilder(func() (geocoding.Provider, error) {
			builds.Add(1)
			<-release
			return staticProvider{}, nil
		}, logger)

		const callers = 8
		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = loader.EnsureLoaded(t.Context())
			}()
		}

		// Give the goroutines a moment to pile up on the same load.
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, int32(1), builds.Load())
	})

	t.Run("failure is sticky", func(t *testing.T) {
		t.Parallel()

		var builds atomic.Int32
		loader := geocoding.NewLoaderWithBuilder(func() (geocoding.Provider, error) {
			builds.Add(1)
			return nil, assert.AnError
		}, logger)

		_, err := loader.EnsureLoaded(t.Context())
		require.ErrorIs(t, err, assert.AnError)

		_, err = loader.EnsureLoaded(t.Context())
		require.ErrorIs(t, err, assert.AnError)

		assert.Equal(t, int32(1), builds.Load())
	})

	t.Run("waiting caller honors context cancellation", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		defer close(release)
		loader := geocoding.NewLoaderWithBuilder(func() (geocoding.Provider, error) {
			close(started)
			<-release
			return staticProvider{}, nil
		}, logger)

		go loader.EnsureLoaded(context.Background()) //nolint:errcheck // first caller blocks on purpose
		<-started

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		_, err := loader.EnsureLoaded(ctx)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

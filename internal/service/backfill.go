// Package service runs the business coordinate backfill: marketplace
// distance search needs every business geocoded, and addresses arrive
// without coordinates.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nursultantorobaev/selfhub-services/internal/geocoding"
	"github.com/nursultantorobaev/selfhub-services/internal/metrics"
	"github.com/nursultantorobaev/selfhub-services/internal/models"
	"github.com/nursultantorobaev/selfhub-services/internal/repository"
)

// ProviderSource hands out the shared geocoding provider; the loader
// satisfies it.
type ProviderSource interface {
	EnsureLoaded(ctx context.Context) (geocoding.Provider, error)
}

// BackfillService periodically geocodes businesses that are missing
// coordinates, fanning batches out over a small worker pool.
type BackfillService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	providers    ProviderSource       // Lazily constructed geocoding provider
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling businesses to geocode
}

// NewBackfillService creates a coordinate backfill service. It takes a
// logger, a repository interface, a provider source, the provider name for
// metrics, metrics for monitoring, the number of workers to use, and a
// polling interval.
func NewBackfillService(
	log *slog.Logger,
	repo repository.Interface,
	providers ProviderSource,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *BackfillService {
	return &BackfillService{
		log:          log,
		repo:         repo,
		providers:    providers,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run starts the backfill loop, which periodically polls for businesses to
// geocode. It listens for a cancellation signal from the context to
// gracefully stop the service.
func (bs *BackfillService) Run(ctx context.Context) {
	ticker := time.NewTicker(bs.pollInterval)
	defer ticker.Stop()

	bs.log.InfoContext(ctx, "Coordinate backfill started...")

	for {
		select {
		case <-ctx.Done():
			bs.log.InfoContext(ctx, "Coordinate backfill stopped.")
			return
		case <-ticker.C:
			bs.log.InfoContext(ctx, "Polling for businesses to geocode...")
			bs.processBatch(ctx)
		}
	}
}

// processBatch fetches businesses awaiting coordinates, starts a worker
// pool to geocode them, and waits for all workers to finish.
func (bs *BackfillService) processBatch(ctx context.Context) {
	batchLimit := 100
	businesses, err := bs.repo.FetchBusinessesMissingCoordinates(ctx, batchLimit)
	if err != nil {
		bs.log.ErrorContext(ctx, "Failed to fetch businesses", "error", err)
		return
	}
	if len(businesses) == 0 {
		bs.log.InfoContext(ctx, "No businesses to geocode.")
		return
	}

	provider, err := bs.providers.EnsureLoaded(ctx)
	if err != nil {
		bs.log.ErrorContext(ctx, "Geocoding provider unavailable", "error", err)
		return
	}

	bs.log.InfoContext(
		ctx,
		"Found businesses to geocode. Starting worker pool.",
		"jobs",
		len(businesses),
		"num_workers",
		bs.numWorkers,
	)

	jobs := make(chan models.Business, len(businesses))
	var wgr sync.WaitGroup

	for i := 1; i <= bs.numWorkers; i++ {
		wgr.Add(1)
		go bs.worker(ctx, i, &wgr, provider, jobs)
	}

	for _, business := range businesses {
		jobs <- business
	}
	close(jobs)

	wgr.Wait()
	bs.log.InfoContext(ctx, "Processing batch finished")
}

// worker geocodes businesses from the jobs channel. A geocoding failure
// increments the business's attempt counter; a success writes the
// coordinates back.
func (bs *BackfillService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	provider geocoding.Provider,
	jobs <-chan models.Business,
) {
	defer wg.Done()
	for business := range jobs {
		var err error

		bs.metrics.ActiveWorkers.Inc()
		bs.log.DebugContext(ctx, "Geocoding business", "worker", idx, "business", business.ID)

		startTime := time.Now()
		point, err := provider.Geocode(ctx, business.Address)
		duration := time.Since(startTime).Seconds()
		bs.metrics.RequestSeconds.WithLabelValues(bs.providerName).Observe(duration)

		if err != nil {
			bs.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "business", business.ID, "error", err)
			bs.metrics.BusinessesGeocoded.WithLabelValues("failure").Inc()
			bs.metrics.ProviderErrors.Inc()

			if err = bs.repo.IncrementGeocodeFailure(ctx, business.ID, err.Error()); err != nil {
				bs.log.ErrorContext(
					ctx,
					"Could not update failure count for business",
					"worker", idx,
					"business", business.ID,
					"error", err,
				)
			}
			bs.metrics.ActiveWorkers.Dec()
			continue
		}

		bs.metrics.BusinessesGeocoded.WithLabelValues("success").Inc()

		if err = bs.repo.UpdateBusinessCoordinates(ctx, business.ID, *point); err != nil {
			bs.log.ErrorContext(
				ctx,
				"Failed to update coordinates for business",
				"worker", idx,
				"business", business.ID,
				"error", err,
			)
		} else {
			bs.log.DebugContext(ctx, "Worker geocoded the business", "worker", idx, "business", business.ID)
		}

		bs.metrics.ActiveWorkers.Dec()
	}
}

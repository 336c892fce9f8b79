package export

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/services/property"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	storeexport "github.com/de-tools/revenue-atlas/pkg/store/export"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Archive persists one rendered report under a key.
type Archive interface {
	Put(ctx context.Context, key string, report api.RevenueReport) error
}

type KeyFunc func(report api.RevenueReport) string

type RunnerConfig struct {
	Concurrency int
	Key         KeyFunc
}

type RunnerProgress struct {
	PropertyID      string
	Key             string
	ExportedReports int64
	TotalReports    int64
	LastExportedAt  time.Time
}

// Runner exports the revenue report of every property of a tenant, at most
// Concurrency reports at a time.
type Runner struct {
	directory property.Directory
	revenue   revenue.Service
	archive   Archive
	progress  chan RunnerProgress
	config    RunnerConfig
}

func NewRunner(directory property.Directory, revenueSvc revenue.Service, archive Archive, config RunnerConfig) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = 4
	}
	if config.Key == nil {
		config.Key = storeexport.DefaultKey
	}
	return &Runner{
		directory: directory,
		revenue:   revenueSvc,
		archive:   archive,
		progress:  make(chan RunnerProgress, 100),
		config:    config,
	}
}

// Progress is closed when Run returns.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context, tenantID string, month, year *int) error {
	defer close(r.progress)
	logger := zerolog.Ctx(ctx).With().Str("tenant_id", tenantID).Logger()

	if _, err := revenue.ValidatePeriod(month, year); err != nil {
		return err
	}

	properties, err := r.directory.ListProperties(ctx, tenantID)
	if err != nil {
		return err
	}
	total := int64(len(properties))
	logger.Info().Int64("properties", total).Msg("bulk export started")

	var exported atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for _, p := range properties {
		g.Go(func() error {
			report, err := r.revenue.GetRevenueSummary(gctx, domain.SummaryRequest{
				PropertyID: p.ID,
				TenantID:   tenantID,
				Month:      month,
				Year:       year,
			})
			if err != nil {
				return err
			}

			out := adapters.MapRevenueReportDomainToApi(*report)
			key := r.config.Key(out)
			if err := r.archive.Put(gctx, key, out); err != nil {
				return fmt.Errorf("export property %s: %w", p.ID, err)
			}

			select {
			case r.progress <- RunnerProgress{
				PropertyID:      p.ID,
				Key:             key,
				ExportedReports: exported.Add(1),
				TotalReports:    total,
				LastExportedAt:  time.Now(),
			}:
			case <-gctx.Done():
				return gctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Int64("exported", exported.Load()).Msg("bulk export failed")
		return err
	}
	logger.Info().Int64("exported", exported.Load()).Msg("bulk export finished")
	return nil
}

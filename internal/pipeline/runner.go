// Package pipeline orchestrates the daily resampling and feature derivation
// for one (date, symbol) unit of work.
package pipeline

import (
	"context"
	"fmt"

	"github.com/blankbits/reup/internal/csvcodec"
	"github.com/blankbits/reup/internal/infrastructure/objectstore"
	"github.com/blankbits/reup/internal/infrastructure/questdb/second"
	"github.com/blankbits/reup/internal/usecase/features"
	"github.com/blankbits/reup/internal/usecase/resample"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"
	"github.com/blankbits/reup/pkg/util"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
	timeseriesv1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

const (
	timeSeriesFile       = "time-series.csv.gz"
	featuresSecondFile   = "features-second.csv.gz"
	featuresDayFile      = "features-day.csv.gz"
	featuresBoundaryFile = "features-boundary.csv.gz"
)

// Job is one unit of pipeline work.
type Job struct {
	Date   string `json:"date"`
	Symbol string `json:"symbol"`
}

// Runner runs the pipeline stages. The seconds repository is optional; when
// present, resampled rows are mirrored into QuestDB alongside the artifact.
type Runner struct {
	loader  tickv1.Loader
	store   objectstore.ObjectStore
	seconds second.SecondRepository
	cfg     *config.Config
	logger  logger.Interface
}

// NewRunner creates a pipeline runner.
func NewRunner(
	loader tickv1.Loader,
	store objectstore.ObjectStore,
	seconds second.SecondRepository,
	cfg *config.Config,
	log logger.Interface,
) *Runner {
	return &Runner{
		loader:  loader,
		store:   store,
		seconds: seconds,
		cfg:     cfg,
		logger:  log,
	}
}

// Run executes both pipeline stages for one job.
func (r *Runner) Run(ctx context.Context, job Job) error {
	ctx = util.WithRunID(ctx, "")

	if err := r.TimeSeries(ctx, job); err != nil {
		return err
	}
	return r.Features(ctx, job)
}

// TimeSeries loads the raw tick streams, filters discarded trades, resamples
// to one row per second, and writes the series artifact. Nothing is written
// until the whole series has been computed and serialized.
func (r *Runner) TimeSeries(ctx context.Context, job Job) error {
	ctx = util.WithRunID(ctx, util.GetRunID(ctx))

	r.logger.InfoContext(ctx, "resampling tick streams",
		logger.Field{Key: "date", Value: job.Date},
		logger.Field{Key: "symbol", Value: job.Symbol},
	)

	quotes, err := r.loader.Quotes(ctx, job.Date, job.Symbol)
	if err != nil {
		return err
	}
	trades, err := r.loader.Trades(ctx, job.Date, job.Symbol)
	if err != nil {
		return err
	}

	trades = resample.DiscardTradeConditions(trades, r.cfg.Market.DiscardConditionSet())

	series, err := resample.NewResampler(r.logger).SecondsSeries(quotes, trades)
	if err != nil {
		return err
	}

	data, err := csvcodec.WriteSeconds(series)
	if err != nil {
		return err
	}

	if err := r.store.Put(ctx, r.key(job, timeSeriesFile), data); err != nil {
		return err
	}

	if r.seconds != nil {
		rows := make([]*second.Second, len(series))
		for i := range series {
			rows[i] = &second.Second{
				Symbol: job.Symbol,
				Date:   job.Date,
				Row:    series[i],
			}
		}
		if err := r.seconds.StoreBatch(ctx, rows); err != nil {
			return err
		}
	}

	r.logger.InfoContext(ctx, "wrote time series",
		logger.Field{Key: "date", Value: job.Date},
		logger.Field{Key: "symbol", Value: job.Symbol},
		logger.Field{Key: "rows", Value: len(series)},
	)
	return nil
}

// Features reads the series artifact back and derives the day, rolling
// window, and day boundary feature artifacts. All three outputs are computed
// and serialized before the first write so a failure cannot leave a partial
// feature set behind.
func (r *Runner) Features(ctx context.Context, job Job) error {
	ctx = util.WithRunID(ctx, util.GetRunID(ctx))

	r.logger.InfoContext(ctx, "deriving features",
		logger.Field{Key: "date", Value: job.Date},
		logger.Field{Key: "symbol", Value: job.Symbol},
	)

	data, err := r.store.Get(ctx, r.key(job, timeSeriesFile))
	if err != nil {
		return err
	}
	series, err := csvcodec.ReadSeconds(data)
	if err != nil {
		return err
	}

	secondData, err := r.secondFeatures(series)
	if err != nil {
		return err
	}
	dayData, err := r.dayFeatures(series, job.Date)
	if err != nil {
		return err
	}
	boundaryData, err := r.boundaryFeatures(series, job.Date)
	if err != nil {
		return err
	}

	if err := r.store.Put(ctx, r.key(job, featuresSecondFile), secondData); err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key(job, featuresDayFile), dayData); err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key(job, featuresBoundaryFile), boundaryData); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "wrote features",
		logger.Field{Key: "date", Value: job.Date},
		logger.Field{Key: "symbol", Value: job.Symbol},
	)
	return nil
}

func (r *Runner) secondFeatures(series []timeseriesv1.SecondRow) ([]byte, error) {
	dayRows := features.DayFeatures(series)
	rolling := features.RollingFeatures(series, r.cfg.Features.TimeWindows)
	return csvcodec.WriteFeatures(dayRows, rolling)
}

func (r *Runner) dayFeatures(series []timeseriesv1.SecondRow, date string) ([]byte, error) {
	summary, err := features.DaySummary(series, date)
	if err != nil {
		return nil, err
	}
	return csvcodec.WriteDaySummary(summary)
}

func (r *Runner) boundaryFeatures(series []timeseriesv1.SecondRow, date string) ([]byte, error) {
	open, close, weekday, err := r.cfg.Market.SessionTimestamps(date)
	if err != nil {
		return nil, err
	}
	boundary, err := features.BoundaryFeatures(series, open, close, weekday, r.cfg.Features.TimeWindows)
	if err != nil {
		return nil, err
	}
	return csvcodec.WriteBoundary(boundary)
}

func (r *Runner) key(job Job, file string) string {
	return fmt.Sprintf("%s/%s/%s/%s", r.cfg.ObjectStore.Prefix, job.Date, job.Symbol, file)
}
